package server

import (
	"errors"
	"strconv"
	"time"

	"journal/internal/models"

	"github.com/gofiber/fiber/v2"
)

// render renders a named view inside the shared layout.
func (s *Server) render(c *fiber.Ctx, name string, bind fiber.Map) error {
	return c.Render(name, bind, "layouts/main")
}

// renderError renders the error view with the given status and message.
func (s *Server) renderError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).Render("error", fiber.Map{"Msg": msg}, "layouts/main")
}

// renderAppError maps an application error to the error view with an
// appropriate status. Internal causes are logged, never shown to the client.
func (s *Server) renderAppError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
	}

	switch appErr.Code {
	case "NOT_FOUND":
		return s.renderError(c, fiber.StatusNotFound, appErr.Message)
	case "VALIDATION_ERROR":
		return s.renderError(c, fiber.StatusBadRequest, appErr.Message)
	case "DUPLICATE_USER":
		return s.renderError(c, fiber.StatusConflict, appErr.Message)
	case "INVALID_CREDENTIALS":
		return s.renderError(c, fiber.StatusUnauthorized, appErr.Message)
	case "UNAUTHORIZED":
		return s.renderError(c, fiber.StatusUnauthorized, appErr.Message)
	default:
		return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

// parsePostID parses the :postId path parameter.
func parsePostID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("postId"), 10, 32)
	if err != nil {
		return 0, models.NewValidationError("Invalid post ID")
	}
	return uint(id), nil
}

// dateLayouts are the accepted formats for the optional currentDate field.
var dateLayouts = []string{time.RFC3339, "2006-01-02", "January 2, 2006"}

// parseDate parses the compose form's optional date. An empty or unparseable
// value returns the zero time, letting the repository default to now.
func parseDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
