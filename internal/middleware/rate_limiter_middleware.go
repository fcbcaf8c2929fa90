package middleware

import (
	"time"

	"github.com/fadilmartias/interview-quiz/internal/requestdata"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter is a sliding-window limiter. Requests that carry a verified
// identity are counted per user, everything else per client IP.
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	if max == 0 {
		max = 50
	}
	if expiration == 0 {
		expiration = 1 * time.Minute
	}
	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   expiration,
		KeyGenerator: rateLimitKey,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests",
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}

func rateLimitKey(c *fiber.Ctx) string {
	if rd := requestdata.GetRequestData(c.UserContext()); rd != nil && rd.UserID != "" {
		return "user:" + rd.UserID
	}
	return "ip:" + c.IP()
}
