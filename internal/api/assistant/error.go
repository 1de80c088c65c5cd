package assistant

import "VaniAssistant/pkg/response"

var (
	ErrEmptyUtterance        = response.NewError(400, "utterance is empty")
	ErrInvalidSettingKey     = response.NewError(400, "unknown setting key")
	ErrInvalidSettingValue   = response.NewError(400, "invalid value for setting")
	ErrInvalidSettings       = response.NewError(400, "invalid settings")
	ErrInvalidTrigger        = response.NewError(400, "trigger is empty after normalization")
	ErrInvalidCustomAction   = response.NewError(400, "custom command action is empty")
	ErrCustomCommandNotFound = response.NewError(404, "custom command not found")
	ErrUnknownCommand        = response.NewError(422, "unknown command")
	ErrActionPanicked        = response.NewError(500, "action handler panicked")
	ErrStorageFailure        = response.NewError(500, "failed to persist assistant state")
)

// Wire codes carried in CommandResponse.ErrorCode.
const (
	CodeNoActiveTab       = "NO_ACTIVE_TAB"
	CodeNoMatchingElement = "NO_MATCHING_ELEMENT"
	CodeUnknownCommand    = "UNKNOWN_COMMAND"
	CodeActionFailed      = "ACTION_FAILED"
)
