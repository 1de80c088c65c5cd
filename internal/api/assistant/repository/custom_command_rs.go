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

// GetCustomCommands returns the commands in insertion order. The list is
// stored as one JSON array so the order survives every backend.
func (r *customCommandRepository) GetCustomCommands(ctx context.Context) ([]entity.CustomCommand, error) {
	requestID := contextPkg.GetRequestID(ctx)

	raw, err := r.store.Get(ctx, keyCustomCommands)
	if errors.Is(err, kvstore.ErrNotFound) {
		return []entity.CustomCommand{}, nil
	}
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to read custom commands")
		return nil, err
	}

	var commands []entity.CustomCommand
	if err := jsoniter.Unmarshal(raw, &commands); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Stored custom commands are corrupt")
		return nil, err
	}

	if commands == nil {
		commands = []entity.CustomCommand{}
	}
	return commands, nil
}

func (r *customCommandRepository) SaveCustomCommands(ctx context.Context, commands []entity.CustomCommand) error {
	requestID := contextPkg.GetRequestID(ctx)

	if commands == nil {
		commands = []entity.CustomCommand{}
	}

	raw, err := jsoniter.Marshal(commands)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to encode custom commands")
		return err
	}

	if err := r.store.Set(ctx, keyCustomCommands, raw); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"count":      len(commands),
		}).Error("Failed to write custom commands")
		return err
	}

	return nil
}
