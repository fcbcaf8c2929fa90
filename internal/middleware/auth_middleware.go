package middleware

import (
	"strings"

	"github.com/fadilmartias/interview-quiz/internal/logger"
	"github.com/fadilmartias/interview-quiz/internal/requestdata"
	"github.com/fadilmartias/interview-quiz/internal/service"
	"github.com/fadilmartias/interview-quiz/internal/util"
	"github.com/gofiber/fiber/v2"
)

// Authenticate attaches the verified user id to the request context. A
// request without a bearer token passes through anonymously and is rejected
// by the operations that need an identity; a bad token is rejected here.
func Authenticate(log *logger.Logger, identity service.IdentityServiceInterface) fiber.Handler {
	log = log.With("middleware", "Authenticate")
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Next()
		}

		userID, err := identity.Verify(c.UserContext(), token)
		if err != nil {
			log.Debug("rejecting session token", "path", c.Path(), "error", err)
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "invalid or expired session",
			})
		}

		c.SetUserContext(requestdata.WithRequestData(c.UserContext(), &requestdata.RequestData{UserID: userID}))
		return c.Next()
	}
}

func bearerToken(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
