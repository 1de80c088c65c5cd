package middleware

import (
	jwtPkg "VaniAssistant/pkg/jwt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type tokenMiddleware struct {
	secretEnvKey string
}

func newTokenMiddleware(secretEnvKey string) *tokenMiddleware {
	return &tokenMiddleware{secretEnvKey: secretEnvKey}
}

func (t *tokenMiddleware) enabled() bool {
	return t.secretEnvKey != "" && os.Getenv(t.secretEnvKey) != ""
}

// NewAgentTokenMiddleware admits a page agent carrying a valid token. When no
// secret is configured every agent is admitted.
func (m *middleware) NewAgentTokenMiddleware(ctx *fiber.Ctx) error {
	if !m.token.enabled() {
		return ctx.Next()
	}

	token, err := jwtPkg.VerifyTokenHeader(ctx, m.token.secretEnvKey)
	if err != nil || !token.Valid {
		fields := logrus.Fields{
			"path":      ctx.Path(),
			"client_ip": ctx.IP(),
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		m.log.WithFields(fields).Warn("Agent token verification failed")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, agent token invalid or expired",
			"code":  "UNAUTHORIZED",
		})
	}

	jwtPkg.SetAgentID(ctx, token)
	agentID, _ := jwtPkg.GetAgentID(ctx)
	m.log.WithFields(logrus.Fields{
		"agent_id":  agentID,
		"client_ip": ctx.IP(),
	}).Debug("Agent authenticated")

	return ctx.Next()
}
