package assistantService

import (
	"VaniAssistant/internal/api/assistant"
	"VaniAssistant/internal/entity"
	contextPkg "VaniAssistant/pkg/context"
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

func (s *assistantService) GetSettings(ctx context.Context) entity.Settings {
	return s.state.getSettings()
}

// UpdateSettings replaces the whole record. Concurrent updates are last
// writer wins.
func (s *assistantService) UpdateSettings(ctx context.Context, settings entity.Settings) (entity.Settings, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.validator.Struct(settings); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid settings")
		return entity.Settings{}, fmt.Errorf("%w: %v", assistant.ErrInvalidSettings, err)
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if err := s.repo.NewClient().Settings.SaveSettings(ctx, settings); err != nil {
		return entity.Settings{}, fmt.Errorf("%w: %v", assistant.ErrStorageFailure, err)
	}
	s.state.settings = settings

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"ai_enabled": settings.AIEnabled,
		"language":   settings.Language,
	}).Info("Settings updated")

	return settings, nil
}

// ToggleSetting changes one field. A nil value flips a boolean field.
func (s *assistantService) ToggleSetting(ctx context.Context, key string, value interface{}) (entity.Settings, error) {
	requestID := contextPkg.GetRequestID(ctx)
	key = strings.ToLower(strings.TrimSpace(key))

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	next := s.state.settings
	if err := applySetting(&next, key, value); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"key":        key,
			"error":      err.Error(),
		}).Warn("Invalid setting toggle")
		return entity.Settings{}, err
	}

	if err := s.validator.Struct(next); err != nil {
		return entity.Settings{}, fmt.Errorf("%w: %s: %v", assistant.ErrInvalidSettingValue, key, err)
	}

	if err := s.repo.NewClient().Settings.SaveSettings(ctx, next); err != nil {
		return entity.Settings{}, fmt.Errorf("%w: %v", assistant.ErrStorageFailure, err)
	}
	s.state.settings = next

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"key":        key,
	}).Info("Setting toggled")

	return next, nil
}

func applySetting(settings *entity.Settings, key string, value interface{}) error {
	switch key {
	case "ai_enabled":
		return setBool(&settings.AIEnabled, key, value)
	case "wake_word_enabled":
		return setBool(&settings.WakeWordEnabled, key, value)
	case "continuous_listening":
		return setBool(&settings.ContinuousListening, key, value)
	case "voice_rate":
		return setFloat(&settings.VoiceRate, key, value)
	case "voice_pitch":
		return setFloat(&settings.VoicePitch, key, value)
	case "voice_volume":
		return setFloat(&settings.VoiceVolume, key, value)
	case "language":
		lang, ok := value.(string)
		if !ok || strings.TrimSpace(lang) == "" {
			return fmt.Errorf("%w: %s expects a language tag", assistant.ErrInvalidSettingValue, key)
		}
		settings.Language = strings.TrimSpace(lang)
		return nil
	default:
		return fmt.Errorf("%w: %q", assistant.ErrInvalidSettingKey, key)
	}
}

func setBool(field *bool, key string, value interface{}) error {
	if value == nil {
		*field = !*field
		return nil
	}
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("%w: %s expects true or false", assistant.ErrInvalidSettingValue, key)
	}
	*field = b
	return nil
}

func setFloat(field *float64, key string, value interface{}) error {
	switch n := value.(type) {
	case float64:
		*field = n
	case float32:
		*field = float64(n)
	case int:
		*field = float64(n)
	case int64:
		*field = float64(n)
	default:
		return fmt.Errorf("%w: %s expects a number", assistant.ErrInvalidSettingValue, key)
	}
	return nil
}
