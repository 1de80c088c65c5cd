package assistantHandler

import (
	assistantService "VaniAssistant/internal/api/assistant/service"
	"VaniAssistant/internal/middleware"
	"VaniAssistant/pkg/pageagent"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type AssistantHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	assistantService assistantService.IAssistantService
	hub              *pageagent.Hub
}

// New builds the handler. hub may be nil when the page agent is not a
// websocket client, in which case the agent endpoint is not mounted.
func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as assistantService.IAssistantService,
	hub *pageagent.Hub,
) *AssistantHandler {
	return &AssistantHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		assistantService: as,
		hub:              hub,
	}
}

func (h *AssistantHandler) Start(srv fiber.Router) {
	assistant := srv.Group("/assistant")

	assistant.Post("/commands", h.middleware.NewRateLimiter, h.ProcessCommand)

	assistant.Get("/settings", h.GetSettings)
	assistant.Put("/settings", h.UpdateSettings)
	assistant.Patch("/settings", h.ToggleSetting)

	assistant.Get("/custom-commands", h.GetCustomCommands)
	assistant.Post("/custom-commands", h.AddCustomCommand)
	assistant.Delete("/custom-commands/:trigger", h.DeleteCustomCommand)

	assistant.Get("/history", h.GetHistory)
	assistant.Delete("/history", h.ClearHistory)

	assistant.Get("/patterns", h.GetPatterns)

	if h.hub != nil {
		assistant.Use("/agent", h.middleware.NewAgentTokenMiddleware, h.UpgradeAgent)
		assistant.Get("/agent", websocket.New(h.ServeAgent))
	}
}
