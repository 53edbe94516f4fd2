package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/voiceassist/backend/internal/domain"
)

// ErrorHandler renders every error as a failed CommandResult.
// Only messages of *fiber.Error reach the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "An unexpected error occurred. Please try again."

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		log.WithFields(log.Fields{"path": c.Path(), "error": err}).Error("unhandled request error")
	}

	return c.Status(code).JSON(domain.Fail(message))
}
