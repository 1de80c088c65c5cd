package entity

import (
	"VaniAssistant/pkg/matcher"
	"time"
)

const DefaultLanguage = "en-US"

type Settings struct {
	VoiceRate           float64 `json:"voice_rate" validate:"gte=0.1,lte=10"`
	VoicePitch          float64 `json:"voice_pitch" validate:"gte=0,lte=2"`
	VoiceVolume         float64 `json:"voice_volume" validate:"gte=0,lte=1"`
	AIEnabled           bool    `json:"ai_enabled"`
	WakeWordEnabled     bool    `json:"wake_word_enabled"`
	ContinuousListening bool    `json:"continuous_listening"`
	Language            string  `json:"language" validate:"required,bcp47_language_tag"`
}

func DefaultSettings() Settings {
	return Settings{
		VoiceRate:   1.0,
		VoicePitch:  1.0,
		VoiceVolume: 1.0,
		Language:    DefaultLanguage,
	}
}

// CustomCommand maps a spoken trigger to either a URL or another command.
type CustomCommand struct {
	Trigger   string    `json:"trigger"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

func (c CustomCommand) ToMatcher() matcher.CustomCommand {
	return matcher.CustomCommand{Trigger: c.Trigger, Action: c.Action}
}
