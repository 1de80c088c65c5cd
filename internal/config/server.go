package config

import (
	"VaniAssistant/database/postgres"
	assistantHandler "VaniAssistant/internal/api/assistant/handler"
	assistantRepository "VaniAssistant/internal/api/assistant/repository"
	assistantService "VaniAssistant/internal/api/assistant/service"
	"VaniAssistant/internal/middleware"
	"VaniAssistant/pkg/action"
	"VaniAssistant/pkg/browser"
	"VaniAssistant/pkg/gemini"
	"VaniAssistant/pkg/history"
	"VaniAssistant/pkg/intent"
	jwtPkg "VaniAssistant/pkg/jwt"
	"VaniAssistant/pkg/kvstore"
	"VaniAssistant/pkg/matcher"
	"VaniAssistant/pkg/openai"
	"VaniAssistant/pkg/pageagent"
	"VaniAssistant/pkg/redis"
	"VaniAssistant/pkg/textgen"
	"VaniAssistant/pkg/utils"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine     *fiber.App
	log        *logrus.Logger
	cfg        AssistantConfig
	middleware middleware.Middleware
	validator  *validator.Validate
	utils      utils.IUtils
	store      kvstore.Store
	hub        *pageagent.Hub
	agent      pageagent.Agent
	resolver   *intent.Resolver
	handlers   []handler
	closers    []io.Closer
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{cfg: DefaultAssistantConfig()}

	for _, option := range options {
		if err := option(server); err != nil {
			_ = server.release()
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithConfig must come before the options that read configuration.
func WithConfig(cfg AssistantConfig) ServerOption {
	return func(s *Server) error {
		s.cfg = cfg
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, middleware.WithAgentSecret(jwtPkg.AgentSecretEnv))
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

// WithStore opens the storage backend named by the configuration.
func WithStore() ServerOption {
	return func(s *Server) error {
		switch s.cfg.StorageDriver {
		case StorageRedis:
			store, err := redis.New()
			if err != nil {
				s.logError("Failed to connect to redis", err)
				return fmt.Errorf("failed to create redis store: %w", err)
			}
			s.store = store

		case StoragePostgres:
			db, err := postgres.New()
			if err != nil {
				s.logError("Failed to connect to database", err)
				return fmt.Errorf("failed to create database connection: %w", err)
			}
			store := postgres.NewStore(db, s.log)
			if err := store.EnsureSchema(context.Background()); err != nil {
				_ = store.Close()
				return fmt.Errorf("failed to prepare database schema: %w", err)
			}
			s.store = store

		default:
			s.store = kvstore.NewMemory()
		}

		s.closers = append(s.closers, s.store)
		return nil
	}
}

// WithPageAgent sets up the page agent: a websocket hub the browser extension
// or cmd/agent connects to, or a Playwright browser driven in-process.
func WithPageAgent() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before page agent")
		}

		if s.cfg.PageAgentDriver == PageAgentPlaywright {
			driver, err := browser.Start(s.log, browser.Options{
				Headless: s.cfg.PlaywrightHeadless,
				Timeout:  float64(s.cfg.PageAgentTimeout.Milliseconds()),
			})
			if err != nil {
				s.logError("Failed to start browser", err)
				return fmt.Errorf("failed to start playwright driver: %w", err)
			}
			s.agent = pageagent.Bounded(driver, s.cfg.PageAgentTimeout)
			s.closers = append(s.closers, driver)
			return nil
		}

		s.hub = pageagent.NewHub(s.log, s.cfg.PageAgentTimeout)
		s.agent = s.hub
		return nil
	}
}

// WithIntentResolver builds the AI tier for the configured provider. With no
// provider the AI tier is skipped at dispatch.
func WithIntentResolver() ServerOption {
	return func(s *Server) error {
		var (
			completer intent.Completer
			err       error
		)

		switch s.cfg.AIProvider {
		case AIProviderOpenAI:
			completer, err = openai.NewCompleter()
		case AIProviderGemini:
			var client *gemini.Client
			client, err = gemini.NewCompleter(context.Background())
			if err == nil {
				s.closers = append(s.closers, client)
				completer = client
			}
		case AIProviderHTTP:
			completer, err = textgen.NewFromEnv()
		default:
			return nil
		}

		if err != nil {
			s.logError("Failed to create AI client", err)
			return fmt.Errorf("failed to create %s completer: %w", s.cfg.AIProvider, err)
		}

		s.resolver = intent.NewResolver(completer, s.cfg.AITimeout)
		return nil
	}
}

func (s *Server) RegisterHandler() error {
	if s.store == nil {
		s.store = kvstore.NewMemory()
	}
	if s.validator == nil {
		s.validator = NewValidator()
	}
	if s.middleware == nil {
		s.middleware = middleware.New(s.log)
	}
	if s.utils == nil {
		s.utils = utils.New()
	}

	table := matcher.DefaultTable()
	if s.cfg.PatternTablePath != "" {
		loaded, err := matcher.LoadTableFile(s.cfg.PatternTablePath)
		if err != nil {
			return fmt.Errorf("failed to load pattern table: %w", err)
		}
		table = loaded
	}
	m := matcher.New(table)
	for _, c := range m.Collisions() {
		s.log.WithFields(logrus.Fields{
			"collision": c,
		}).Warn("Pattern table collision")
	}

	// Assistant Domain
	registry := action.NewRegistry(s.agent, action.WithLocation(s.cfg.Timezone))
	assistantRepo := assistantRepository.New(s.store, s.log)
	assistantServices, err := assistantService.NewAssistantService(
		context.Background(),
		s.log,
		assistantRepo,
		history.New(s.store, s.cfg.HistoryCapacity),
		m,
		registry,
		s.agent,
		s.resolver,
		s.validator,
		s.utils,
	)
	if err != nil {
		return fmt.Errorf("failed to create assistant service: %w", err)
	}
	assistantHandlers := assistantHandler.New(s.log, s.validator, s.middleware, assistantServices, s.hub)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, assistantHandlers)

	s.log.WithFields(logrus.Fields{
		"storage":    s.cfg.StorageDriver,
		"page_agent": s.cfg.PageAgentDriver,
		"ai":         s.cfg.AIProvider,
		"patterns":   len(table),
	}).Info("Handlers registered")

	return nil
}

// Mount attaches middleware and routes. Run calls it; tests use it to get a
// routable app without listening.
func (s *Server) Mount() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	s.Mount()

	if err := s.engine.Listen(fmt.Sprintf(":%s", s.cfg.Port)); err != nil {
		return err
	}

	return nil
}

// Shutdown stops the listener and releases the storage, browser and AI
// clients.
func (s *Server) Shutdown() error {
	var errs []error
	if s.engine != nil {
		if err := s.engine.Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.release(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *Server) release() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}

func (s *Server) logError(msg string, err error) {
	if s.log != nil {
		s.log.Errorf("%s: %v", msg, err)
	}
}
