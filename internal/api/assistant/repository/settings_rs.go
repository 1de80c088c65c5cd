package assistantRepository

import (
	"VaniAssistant/internal/entity"
	contextPkg "VaniAssistant/pkg/context"
	"VaniAssistant/pkg/kvstore"
	"context"
	"errors"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// GetSettings returns the stored record laid over the defaults, so fields
// added after the record was written keep their default values.
func (r *settingsRepository) GetSettings(ctx context.Context) (entity.Settings, error) {
	requestID := contextPkg.GetRequestID(ctx)
	settings := entity.DefaultSettings()

	raw, err := r.store.Get(ctx, keySettings)
	if errors.Is(err, kvstore.ErrNotFound) {
		return settings, nil
	}
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to read settings")
		return settings, err
	}

	if err := jsoniter.Unmarshal(raw, &settings); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Stored settings are corrupt, using defaults")
		return entity.DefaultSettings(), nil
	}

	return settings, nil
}

func (r *settingsRepository) SaveSettings(ctx context.Context, settings entity.Settings) error {
	requestID := contextPkg.GetRequestID(ctx)

	raw, err := jsoniter.Marshal(settings)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to encode settings")
		return err
	}

	if err := r.store.Set(ctx, keySettings, raw); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to write settings")
		return err
	}

	return nil
}
