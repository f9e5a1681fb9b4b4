package server

import (
	"github.com/gofiber/fiber/v2"
)

// ToggleFollow handles POST /api/users/id/:id/follow
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	ctx := c.Context()
	targetID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	state, err := s.socialService.ToggleFollow(ctx, s.identity(c), targetID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"state": state})
}

// ToggleBlock handles POST /api/users/id/:id/block
func (s *Server) ToggleBlock(c *fiber.Ctx) error {
	ctx := c.Context()
	targetID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	blocked, err := s.socialService.ToggleBlock(ctx, s.identity(c), targetID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"blocked": blocked})
}

// GetRelationship handles GET /api/users/id/:id/relationship
func (s *Server) GetRelationship(c *fiber.Ctx) error {
	ctx := c.Context()
	targetID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	rel, err := s.socialService.RelationshipTo(ctx, s.identity(c), targetID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(rel)
}

// GetFollowRequests handles GET /api/follow-requests
func (s *Server) GetFollowRequests(c *fiber.Ctx) error {
	ctx := c.Context()

	requests, err := s.socialService.IncomingRequests(ctx, s.identity(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(requests)
}

// AcceptFollowRequest handles POST /api/follow-requests/:senderId/accept
func (s *Server) AcceptFollowRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	senderID, err := parseID(c, "senderId")
	if err != nil {
		return fail(c, err)
	}

	if err := s.socialService.AcceptFollowRequest(ctx, s.identity(c), senderID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Follow request accepted"})
}

// DeclineFollowRequest handles POST /api/follow-requests/:senderId/decline
func (s *Server) DeclineFollowRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	senderID, err := parseID(c, "senderId")
	if err != nil {
		return fail(c, err)
	}

	if err := s.socialService.DeclineFollowRequest(ctx, s.identity(c), senderID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Follow request declined"})
}
