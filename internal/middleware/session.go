package middleware

import (
	"errors"
	"fmt"
	"log"

	"orderdesk/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// SessionKey is the Locals key SessionRequired stores the session under.
const SessionKey = "session"

// SessionRequired is a Fiber middleware that resolves the session named by the
// :id route parameter.
func SessionRequired[T any](lookup func(id string) (T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		session, err := lookup(id)
		if err != nil {
			return SessionError(c, id, err)
		}

		c.Locals(SessionKey, session)
		return c.Next()
	}
}

// Session returns the session stored by SessionRequired.
func Session[T any](c *fiber.Ctx) T {
	session, _ := c.Locals(SessionKey).(T)
	return session
}

// SessionError writes the response for a failed session lookup.
func SessionError(c *fiber.Ctx, id string, err error) error {
	if errors.Is(err, repositories.ErrSessionNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Session %s not found", id),
		})
	}
	log.Printf("Session lookup for %s failed: %v", id, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not retrieve session",
		"error":   err.Error(),
	})
}
