package assistantService

import (
	"VaniAssistant/internal/entity"
	"VaniAssistant/pkg/matcher"
	"sync"
)

// state is the mutable assistant configuration shared by all requests.
// Writers hold mu across the storage write so memory and storage never
// disagree.
type state struct {
	mu       sync.RWMutex
	settings entity.Settings
	commands []entity.CustomCommand
}

func newState(settings entity.Settings, commands []entity.CustomCommand) *state {
	return &state{
		settings: settings,
		commands: append([]entity.CustomCommand(nil), commands...),
	}
}

func (s *state) snapshot() (entity.Settings, []matcher.CustomCommand) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	custom := make([]matcher.CustomCommand, len(s.commands))
	for i, c := range s.commands {
		custom[i] = c.ToMatcher()
	}
	return s.settings, custom
}

func (s *state) getSettings() entity.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *state) customCommands() []entity.CustomCommand {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.CustomCommand{}, s.commands...)
}

func indexOfTrigger(commands []entity.CustomCommand, trigger string) int {
	for i, c := range commands {
		if c.Trigger == trigger {
			return i
		}
	}
	return -1
}
