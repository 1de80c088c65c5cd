package middleware

import (
	"VaniAssistant/pkg/utils"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RequestIDKey = "X-Request-ID"

// Client supplied ids end up in every log line of the request, so only short
// token-like values are kept.
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

func NewRequestIDMiddleware() fiber.Handler {
	ids := utils.New()

	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)

		if !validRequestID.MatchString(requestID) {
			var err error
			requestID, err = ids.NewULIDFromTimestamp(time.Now())
			if err != nil {
				requestID = uuid.NewString()
			}
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)

		return c.Next()
	}
}
