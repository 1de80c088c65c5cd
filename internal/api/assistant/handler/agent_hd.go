package assistantHandler

import (
	jwtPkg "VaniAssistant/pkg/jwt"
	"VaniAssistant/pkg/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const agentIDLocal = "agent_id"

// UpgradeAgent admits only websocket upgrades and fixes the agent id the
// connection will be known by.
func (h *AssistantHandler) UpgradeAgent(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	id, ok := jwtPkg.GetAgentID(ctx)
	if !ok {
		id = ctx.Query("agent_id")
	}
	if id == "" {
		id = uuid.NewString()
	}
	ctx.Locals(agentIDLocal, id)

	return ctx.Next()
}

// ServeAgent hands the connection to the hub for its whole lifetime.
func (h *AssistantHandler) ServeAgent(conn *websocket.Conn) {
	id, _ := conn.Locals(agentIDLocal).(string)

	h.log.WithFields(log.Fields{
		"agent_id": id,
		"remote":   conn.RemoteAddr().String(),
	}).Debug("Page agent websocket opened")

	h.hub.Serve(id, conn)
}
