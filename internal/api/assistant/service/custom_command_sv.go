package assistantService

import (
	"VaniAssistant/internal/api/assistant"
	"VaniAssistant/internal/entity"
	contextPkg "VaniAssistant/pkg/context"
	"VaniAssistant/pkg/matcher"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *assistantService) GetCustomCommands(ctx context.Context) []entity.CustomCommand {
	return s.state.customCommands()
}

// AddCustomCommand creates a command or, when the trigger already exists,
// replaces its action in place.
func (s *assistantService) AddCustomCommand(ctx context.Context, req assistant.AddCustomCommandRequest) (entity.CustomCommand, error) {
	requestID := contextPkg.GetRequestID(ctx)

	trigger := matcher.Normalize(req.Trigger)
	if trigger == "" {
		return entity.CustomCommand{}, assistant.ErrInvalidTrigger
	}
	target := strings.TrimSpace(req.Action)
	if target == "" {
		return entity.CustomCommand{}, assistant.ErrInvalidCustomAction
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	commands := append([]entity.CustomCommand(nil), s.state.commands...)
	command := entity.CustomCommand{Trigger: trigger, Action: target, CreatedAt: time.Now()}

	if i := indexOfTrigger(commands, trigger); i >= 0 {
		command.CreatedAt = commands[i].CreatedAt
		commands[i] = command
	} else {
		commands = append(commands, command)
	}

	if err := s.repo.NewClient().CustomCommands.SaveCustomCommands(ctx, commands); err != nil {
		return entity.CustomCommand{}, fmt.Errorf("%w: %v", assistant.ErrStorageFailure, err)
	}
	s.state.commands = commands

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"trigger":    trigger,
		"action":     target,
	}).Info("Custom command saved")

	return command, nil
}

func (s *assistantService) DeleteCustomCommand(ctx context.Context, trigger string) error {
	requestID := contextPkg.GetRequestID(ctx)
	trigger = matcher.Normalize(trigger)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	i := indexOfTrigger(s.state.commands, trigger)
	if i < 0 {
		return assistant.ErrCustomCommandNotFound
	}

	commands := make([]entity.CustomCommand, 0, len(s.state.commands)-1)
	commands = append(commands, s.state.commands[:i]...)
	commands = append(commands, s.state.commands[i+1:]...)

	if err := s.repo.NewClient().CustomCommands.SaveCustomCommands(ctx, commands); err != nil {
		return fmt.Errorf("%w: %v", assistant.ErrStorageFailure, err)
	}
	s.state.commands = commands

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"trigger":    trigger,
	}).Info("Custom command deleted")

	return nil
}
