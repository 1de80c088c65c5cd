package assistantHandler

import (
	"VaniAssistant/internal/api/assistant"
	"VaniAssistant/internal/entity"
	contextPkg "VaniAssistant/pkg/context"
	"VaniAssistant/pkg/handlerUtil"
	"VaniAssistant/pkg/log"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

func (h *AssistantHandler) GetSettings(ctx *fiber.Ctx) error {
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)
	settings := h.assistantService.GetSettings(c)

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, settings)
}

func (h *AssistantHandler) UpdateSettings(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing update settings request")

	var req entity.Settings
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	settings, err := h.assistantService.UpdateSettings(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_settings")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, settings)
	}
}

func (h *AssistantHandler) ToggleSetting(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing toggle setting request")

	var req assistant.ToggleSettingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	settings, err := h.assistantService.ToggleSetting(c, req.Key, req.Value)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "toggle_setting")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, settings)
	}
}
