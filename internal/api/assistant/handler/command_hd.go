package assistantHandler

import (
	"VaniAssistant/internal/api/assistant"
	contextPkg "VaniAssistant/pkg/context"
	"VaniAssistant/pkg/handlerUtil"
	"VaniAssistant/pkg/log"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// commandTimeout bounds how long the client waits; the command itself runs
// to completion either way.
const commandTimeout = 30 * time.Second

func (h *AssistantHandler) ProcessCommand(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), commandTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing command request")

	var req assistant.ProcessCommandRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	resp, err := h.assistantService.ProcessCommand(c, req.Utterance)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_command")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
	}
}
