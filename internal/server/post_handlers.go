package server

import (
	"strconv"

	"journal/internal/models"
	"journal/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ShowPost handles GET /post/:postId.
func (s *Server) ShowPost(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return s.renderAppError(c, err)
	}

	post, err := s.postRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return s.renderAppError(c, err)
	}

	return s.render(c, "post", fiber.Map{
		"Title":   post.Title,
		"Content": post.Content,
	})
}

// SearchPosts handles POST /search with a full-text keyword query.
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	keyword := c.FormValue("keyword")
	if keyword == "" {
		return s.render(c, "search", fiber.Map{
			"Msg":    "No post found!",
			"Result": nil,
		})
	}

	result, err := s.postRepo.Search(c.UserContext(), keyword)
	if err != nil {
		return s.renderAppError(c, err)
	}
	if len(result) == 0 {
		return s.render(c, "search", fiber.Map{
			"Msg":    "No post found!",
			"Result": nil,
		})
	}

	return s.render(c, "search", fiber.Map{
		"Msg":    "Here is the search result:",
		"Result": result,
	})
}

// Admin handles GET /admin and lists all posts for management.
func (s *Server) Admin(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.UserContext())
	if err != nil {
		return s.renderAppError(c, err)
	}
	return s.render(c, "admin", fiber.Map{
		"Posts": posts,
	})
}

// ComposeForm handles GET /compose.
func (s *Server) ComposeForm(c *fiber.Ctx) error {
	return s.render(c, "compose", fiber.Map{})
}

// ComposeSubmit handles POST /compose and creates a post.
func (s *Server) ComposeSubmit(c *fiber.Ctx) error {
	title := c.FormValue("postTitle")
	content := c.FormValue("postBody")

	if err := validation.ValidatePostFields(title, content); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		Title:   title,
		Content: content,
		Date:    parseDate(c.FormValue("currentDate")),
	}
	if err := s.postRepo.Create(c.UserContext(), post); err != nil {
		return s.renderAppError(c, err)
	}

	return c.Redirect("/admin", fiber.StatusFound)
}

// DeletePost handles POST /delete/:postId.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return s.renderAppError(c, err)
	}

	if err := s.postRepo.Delete(c.UserContext(), id); err != nil {
		return s.renderAppError(c, err)
	}

	return c.Redirect("/admin", fiber.StatusFound)
}

// EditForm handles GET /edit/:postId and pre-fills the edit form.
func (s *Server) EditForm(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return s.renderAppError(c, err)
	}

	post, err := s.postRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return s.renderAppError(c, err)
	}

	return s.render(c, "edit", fiber.Map{
		"ID":      post.ID,
		"Title":   post.Title,
		"Date":    post.Date,
		"Content": post.Content,
	})
}

// EditSubmit handles POST /edit and updates a post's title and content.
func (s *Server) EditSubmit(c *fiber.Ctx) error {
	// postId arrives in the form body on this route, not the path.
	rawID, err := strconv.ParseUint(c.FormValue("postId"), 10, 32)
	if err != nil {
		return s.renderAppError(c, models.NewValidationError("Invalid post ID"))
	}
	id := uint(rawID)

	title := c.FormValue("title")
	content := c.FormValue("postBody")

	if err := validation.ValidatePostFields(title, content); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := s.postRepo.Update(c.UserContext(), id, title, content); err != nil {
		return s.renderAppError(c, err)
	}

	return c.Redirect("/admin", fiber.StatusFound)
}
