package server

import (
	"time"

	"journal/internal/middleware"
	"journal/internal/models"
	"journal/internal/session"
	"journal/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// RegisterForm handles GET /register.
func (s *Server) RegisterForm(c *fiber.Ctx) error {
	return s.render(c, "register", fiber.Map{})
}

// RegisterSubmit handles POST /register: create the user, then send them to
// the login page. A duplicate username renders the error view.
func (s *Server) RegisterSubmit(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	if err := validation.ValidateUsername(username); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return s.renderAppError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Username: username,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		return s.renderAppError(c, err)
	}

	return c.Redirect("/login", fiber.StatusFound)
}

// LoginForm handles GET /login.
func (s *Server) LoginForm(c *fiber.Ctx) error {
	return s.render(c, "login", fiber.Map{})
}

// LoginSubmit handles POST /login: verify credentials, establish a session,
// and redirect to the admin page. Unknown user and wrong password produce the
// same response.
func (s *Server) LoginSubmit(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := s.userRepo.GetByUsername(c.UserContext(), username)
	if err != nil {
		return s.renderAppError(c, err)
	}
	if user == nil {
		return s.renderAppError(c, models.NewInvalidCredentialsError())
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cmpErr != nil {
		return s.renderAppError(c, models.NewInvalidCredentialsError())
	}

	token, err := s.sessions.Create(c.UserContext(), user.ID)
	if err != nil {
		return s.renderAppError(c, models.NewInternalError(err))
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  time.Now().Add(session.DefaultTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect("/admin", fiber.StatusFound)
}

// Logout handles GET /logout: destroy the session and render the logout view.
func (s *Server) Logout(c *fiber.Ctx) error {
	token := c.Cookies(sessionCookie)
	if token != "" {
		if err := s.sessions.Destroy(c.UserContext(), token); err != nil {
			middleware.Logger.ErrorContext(c.UserContext(), "failed to destroy session", "error", err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return s.render(c, "logout", fiber.Map{})
}
