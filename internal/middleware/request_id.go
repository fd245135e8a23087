package middleware

import (
	contextPkg "SovicoAssistant/pkg/context"
	"SovicoAssistant/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"regexp"
	"time"
)

const RequestIDKey = "X-Request-ID"

// Client ids end up in logs and websocket connection ids, so only plain tokens are kept.
var clientRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

func newRequestIDMiddleware(u utils.IUtils) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)

		if !clientRequestID.MatchString(requestID) {
			id, err := u.NewULIDFromTimestamp(time.Now())
			if err != nil {
				return err
			}
			requestID = id
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)
		c.SetUserContext(contextPkg.WithRequestID(c.UserContext(), requestID))

		return c.Next()
	}
}
