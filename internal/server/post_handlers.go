package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Body     string `json:"body"`
		ImageURL string `json:"image_url,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		Identity: s.identity(c),
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := s.postService.DeletePost(ctx, s.identity(c), id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// ToggleLike handles POST /api/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	post, err := s.postService.ToggleLike(ctx, s.identity(c), id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(post)
}

// GetFeed handles GET /api/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	posts, err := s.postService.Feed(ctx, service.FeedInput{
		Identity: s.identity(c),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(posts)
}

// GetUserPosts handles GET /api/users/:username/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	username := c.Params("username")
	page := parsePagination(c, 20)

	posts, err := s.postService.UserPosts(ctx, username, s.identity(c), page.Limit, page.Offset)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(posts)
}
