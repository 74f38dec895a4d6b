package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TokenValidator validates seat tokens
type TokenValidator func(token string) (seatID string, claims map[string]any, err error)

// OptionalAuth validates a seat token if present but allows anonymous access
func OptionalAuth(validateToken TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c.Get("Authorization"))
		if token == "" {
			return c.Next()
		}

		seatID, claims, err := validateToken(token)
		if err == nil {
			c.Locals("seatID", seatID)
			if room, ok := claims["roomId"].(string); ok {
				c.Locals("seatRoom", room)
			}
		}
		// Continue regardless of token validity
		return c.Next()
	}
}

// seatFor returns the caller's seat ID when the token was issued for roomID
func seatFor(c *fiber.Ctx, roomID string) string {
	seatID, _ := c.Locals("seatID").(string)
	room, _ := c.Locals("seatRoom").(string)
	if room != roomID {
		return ""
	}
	return seatID
}

// extractBearerToken extracts the token from an Authorization header
func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}
