package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/users/:username
func (s *Server) GetProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	username := c.Params("username")

	card, err := s.profileService.Profile(ctx, username)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(card)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()

	var req service.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.Identity = s.identity(c)

	user, err := s.profileService.UpdateProfile(ctx, req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(user)
}
