package server

import (
	"journal/internal/mail"
	"journal/internal/middleware"
	"journal/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ContactSubmit handles POST /contact: one mail dispatch, then the success or
// failure view. No retries; the relay's verdict is final.
func (s *Server) ContactSubmit(c *fiber.Ctx) error {
	msg := mail.Message{
		SenderName:  c.FormValue("sender_name"),
		SenderEmail: c.FormValue("sender_email"),
		Body:        c.FormValue("sender_message"),
	}

	if msg.SenderName == "" || msg.Body == "" {
		return s.renderError(c, fiber.StatusBadRequest, "Name and message are required.")
	}
	if err := validation.ValidateEmail(msg.SenderEmail); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := s.mailer.Send(c.UserContext(), msg); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "contact mail delivery failed", "error", err)
		return s.render(c, "contact-failure", fiber.Map{})
	}

	return s.render(c, "contact-success", fiber.Map{})
}
