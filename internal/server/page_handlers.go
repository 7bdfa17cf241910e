package server

import (
	"github.com/gofiber/fiber/v2"
)

const (
	homeStartingContent = "Welcome to My Journal!"
	aboutContent        = "It is All About Me..."
	contactContent      = "Find Me Here..."
)

// Home handles GET / and lists all posts.
func (s *Server) Home(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.UserContext())
	if err != nil {
		return s.renderAppError(c, err)
	}
	return s.render(c, "home", fiber.Map{
		"HomeStartingContent": homeStartingContent,
		"Posts":               posts,
	})
}

// About handles GET /about.
func (s *Server) About(c *fiber.Ctx) error {
	return s.render(c, "about", fiber.Map{
		"AboutContent": aboutContent,
	})
}

// ContactForm handles GET /contact.
func (s *Server) ContactForm(c *fiber.Ctx) error {
	return s.render(c, "contact", fiber.Map{
		"ContactContent": contactContent,
	})
}
