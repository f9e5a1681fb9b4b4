package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetStories handles GET /api/stories
func (s *Server) GetStories(c *fiber.Ctx) error {
	ctx := c.Context()

	stories, err := s.storyService.Stories(ctx, s.identity(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(stories)
}

// AddStory handles POST /api/stories
func (s *Server) AddStory(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		ImageURL string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	story, err := s.storyService.AddStory(ctx, s.identity(c), req.ImageURL)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(story)
}
