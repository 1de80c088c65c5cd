package assistantHandler

import (
	contextPkg "VaniAssistant/pkg/context"
	"VaniAssistant/pkg/handlerUtil"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

func (h *AssistantHandler) GetPatterns(ctx *fiber.Ctx) error {
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.assistantService.GetPatterns(c))
}
