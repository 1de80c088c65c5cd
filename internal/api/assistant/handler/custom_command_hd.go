package assistantHandler

import (
	"VaniAssistant/internal/api/assistant"
	"VaniAssistant/internal/entity"
	"VaniAssistant/pkg/action"
	contextPkg "VaniAssistant/pkg/context"
	"VaniAssistant/pkg/handlerUtil"
	"VaniAssistant/pkg/log"
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

func toCustomCommandResponse(c entity.CustomCommand) assistant.CustomCommandResponse {
	_, isURL := action.CustomURL(c.Action)
	return assistant.CustomCommandResponse{
		Trigger:   c.Trigger,
		Action:    c.Action,
		IsURL:     isURL,
		CreatedAt: assistant.FormatTime(c.CreatedAt),
	}
}

func (h *AssistantHandler) GetCustomCommands(ctx *fiber.Ctx) error {
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	commands := h.assistantService.GetCustomCommands(c)
	resp := make([]assistant.CustomCommandResponse, 0, len(commands))
	for _, cmd := range commands {
		resp = append(resp, toCustomCommandResponse(cmd))
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
}

func (h *AssistantHandler) AddCustomCommand(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing add custom command request")

	var req assistant.AddCustomCommandRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	command, err := h.assistantService.AddCustomCommand(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "add_custom_command")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, toCustomCommandResponse(command))
	}
}

func (h *AssistantHandler) DeleteCustomCommand(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	trigger, err := url.PathUnescape(ctx.Params("trigger"))
	if err != nil || trigger == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("trigger is required"), ctx.Path())
	}

	if err := h.assistantService.DeleteCustomCommand(c, trigger); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_custom_command")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusNoContent, nil)
	}
}
