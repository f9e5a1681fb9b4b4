package server

import (
	"time"

	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/webhook"

	"github.com/gofiber/fiber/v2"
)

// Avatar and cover fallbacks for freshly provisioned users.
const (
	defaultAvatar = "/noAvatar.png"
	defaultCover  = "/noCover.png"
)

// IdentityWebhook handles POST /api/webhooks/identity. Deliveries are
// authenticated by their signature, not by a session token; nothing in
// the body is trusted before verification succeeds.
func (s *Server) IdentityWebhook(c *fiber.Ctx) error {
	ctx := c.Context()

	if s.verifier == nil {
		observability.WebhookEvents.WithLabelValues("unknown", "unconfigured").Inc()
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewInternalError(nil))
	}

	body := c.Body()
	headers := webhook.Headers{
		ID:        c.Get(webhook.HeaderID),
		Timestamp: c.Get(webhook.HeaderTimestamp),
		Signature: c.Get(webhook.HeaderSignature),
	}

	if err := s.verifier.Verify(headers, body, time.Now()); err != nil {
		middleware.Logger.WarnContext(ctx, "webhook signature rejected", "error", err)
		observability.WebhookEvents.WithLabelValues("unknown", "rejected").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid webhook signature"))
	}

	evt, err := webhook.ParseEvent(body)
	if err != nil {
		observability.WebhookEvents.WithLabelValues("unknown", "malformed").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Malformed webhook payload"))
	}

	switch evt.Type {
	case webhook.EventUserCreated:
		avatar := evt.Data.ImageURL
		if avatar == "" {
			avatar = defaultAvatar
		}
		user := &models.User{
			ExternalID: evt.Data.ID,
			Username:   evt.Data.Username,
			Avatar:     avatar,
			Cover:      defaultCover,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			middleware.Logger.ErrorContext(ctx, "webhook user provisioning failed",
				"event_type", evt.Type, "error", err)
			observability.WebhookEvents.WithLabelValues(evt.Type, "failed").Inc()
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}

	case webhook.EventUserUpdated:
		avatar := evt.Data.ImageURL
		if avatar == "" {
			avatar = defaultAvatar
		}
		// Only identity-owned fields sync from the provider; profile
		// fields users edit here are never overwritten.
		if err := s.userRepo.UpdateIdentity(ctx, evt.Data.ID, evt.Data.Username, avatar); err != nil {
			middleware.Logger.ErrorContext(ctx, "webhook user sync failed",
				"event_type", evt.Type, "error", err)
			observability.WebhookEvents.WithLabelValues(evt.Type, "failed").Inc()
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}

	default:
		observability.WebhookEvents.WithLabelValues(evt.Type, "ignored").Inc()
		return c.JSON(fiber.Map{"message": "Event ignored"})
	}

	observability.WebhookEvents.WithLabelValues(evt.Type, "processed").Inc()
	return c.JSON(fiber.Map{"message": "Event processed"})
}
