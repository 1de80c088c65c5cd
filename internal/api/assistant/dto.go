package assistant

import (
	"VaniAssistant/pkg/matcher"
	"time"
)

type ProcessCommandRequest struct {
	Utterance string `json:"utterance" validate:"required,max=500"`
}

type CommandResponse struct {
	Command    string       `json:"command"`
	Action     string       `json:"action"`
	Argument   string       `json:"argument,omitempty"`
	Tier       matcher.Tier `json:"tier"`
	Response   string       `json:"response"`
	Success    bool         `json:"success"`
	ErrorCode  string       `json:"error_code,omitempty"`
	Confidence float64      `json:"confidence,omitempty"`
	URL        string       `json:"url,omitempty"`
}

type ToggleSettingRequest struct {
	Key   string      `json:"key" validate:"required"`
	Value interface{} `json:"value"`
}

type AddCustomCommandRequest struct {
	Trigger string `json:"trigger" validate:"required,max=100"`
	Action  string `json:"action" validate:"required,max=500"`
}

type CustomCommandResponse struct {
	Trigger   string `json:"trigger"`
	Action    string `json:"action"`
	IsURL     bool   `json:"is_url"`
	CreatedAt string `json:"created_at"`
}

type HistoryQuery struct {
	Limit int `query:"limit" validate:"gte=0,lte=500"`
}

type HistoryEntryResponse struct {
	ID        string `json:"id"`
	Command   string `json:"command"`
	Response  string `json:"response"`
	Action    string `json:"action,omitempty"`
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
}

type HistoryResponse struct {
	Entries  []HistoryEntryResponse `json:"entries"`
	Capacity int                    `json:"capacity"`
}

type PatternsResponse struct {
	Patterns   []matcher.Pattern   `json:"patterns"`
	Collisions []matcher.Collision `json:"collisions"`
}

func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
