package assistantService

import (
	"VaniAssistant/internal/api/assistant"
	assistantRepository "VaniAssistant/internal/api/assistant/repository"
	"VaniAssistant/internal/entity"
	"VaniAssistant/pkg/action"
	"VaniAssistant/pkg/history"
	"VaniAssistant/pkg/intent"
	"VaniAssistant/pkg/matcher"
	"VaniAssistant/pkg/pageagent"
	"VaniAssistant/pkg/utils"
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type IAssistantService interface {
	ProcessCommand(ctx context.Context, utterance string) (*assistant.CommandResponse, error)

	GetSettings(ctx context.Context) entity.Settings
	UpdateSettings(ctx context.Context, settings entity.Settings) (entity.Settings, error)
	ToggleSetting(ctx context.Context, key string, value interface{}) (entity.Settings, error)

	GetCustomCommands(ctx context.Context) []entity.CustomCommand
	AddCustomCommand(ctx context.Context, req assistant.AddCustomCommandRequest) (entity.CustomCommand, error)
	DeleteCustomCommand(ctx context.Context, trigger string) error

	GetHistory(ctx context.Context, limit int) (*assistant.HistoryResponse, error)
	ClearHistory(ctx context.Context) error

	GetPatterns(ctx context.Context) assistant.PatternsResponse
}

type assistantService struct {
	log       *logrus.Logger
	repo      assistantRepository.Repository
	history   *history.Log
	matcher   *matcher.Matcher
	registry  *action.Registry
	agent     pageagent.Agent
	resolver  *intent.Resolver
	validator *validator.Validate
	utils     utils.IUtils
	state     *state
}

// NewAssistantService loads settings and custom commands from storage and
// installs the custom command handler on registry. agent and resolver may be
// nil: without an agent nothing is spoken, without a resolver the AI tier is
// skipped.
func NewAssistantService(
	ctx context.Context,
	log *logrus.Logger,
	repo assistantRepository.Repository,
	historyLog *history.Log,
	m *matcher.Matcher,
	registry *action.Registry,
	agent pageagent.Agent,
	resolver *intent.Resolver,
	validate *validator.Validate,
	utils utils.IUtils,
) (IAssistantService, error) {
	client := repo.NewClient()

	settings, err := client.Settings.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	commands, err := client.CustomCommands.GetCustomCommands(ctx)
	if err != nil {
		return nil, fmt.Errorf("load custom commands: %w", err)
	}

	s := &assistantService{
		log:       log,
		repo:      repo,
		history:   historyLog,
		matcher:   m,
		registry:  registry,
		agent:     agent,
		resolver:  resolver,
		validator: validate,
		utils:     utils,
		state:     newState(settings, commands),
	}
	registry.Register(action.RunCustom, s.runCustom)

	log.WithFields(logrus.Fields{
		"custom_commands": len(commands),
		"ai_enabled":      settings.AIEnabled,
		"ai_available":    resolver != nil,
		"patterns":        len(m.Table()),
	}).Info("Assistant state loaded")

	return s, nil
}
