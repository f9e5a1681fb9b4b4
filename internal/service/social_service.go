package service

import (
	"context"

	"ripple/internal/featureflags"
	"ripple/internal/models"
	"ripple/internal/notifications"
	"ripple/internal/repository"
)

// SocialService provides follow, follow-request and block business logic.
type SocialService struct {
	socialRepo repository.SocialRepository
	userRepo   repository.UserRepository
	notifier   *notifications.Notifier
	flags      *featureflags.Manager
}

// NewSocialService returns a new SocialService.
func NewSocialService(
	socialRepo repository.SocialRepository,
	userRepo repository.UserRepository,
	notifier *notifications.Notifier,
	flags *featureflags.Manager,
) *SocialService {
	return &SocialService{
		socialRepo: socialRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		flags:      flags,
	}
}

// Relationship describes the viewer's standing toward another user.
type Relationship struct {
	State     models.FollowState `json:"state"`
	FollowsMe bool               `json:"follows_me"`
	Blocked   bool               `json:"blocked"`
}

// ToggleFollow cycles the acting user's relationship toward the target:
// following → unfollow; pending request → cancel; otherwise send a new
// request. Exactly one branch runs; the returned state is what the
// caller ends up in. Deliberately not idempotent.
func (s *SocialService) ToggleFollow(ctx context.Context, identity string, targetID uint) (models.FollowState, error) {
	actor, err := resolveActor(ctx, s.userRepo, identity)
	if err != nil {
		return "", err
	}
	if actor.ID == targetID {
		return "", models.NewValidationError("Cannot follow yourself")
	}
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return "", err
	}

	follow, err := s.socialRepo.GetFollow(ctx, actor.ID, target.ID)
	if err != nil {
		return "", err
	}
	if follow != nil {
		if err := s.socialRepo.DeleteFollow(ctx, actor.ID, target.ID); err != nil {
			return "", err
		}
		return models.FollowStateNone, nil
	}

	request, err := s.socialRepo.GetFollowRequest(ctx, actor.ID, target.ID)
	if err != nil {
		return "", err
	}
	if request != nil {
		if err := s.socialRepo.DeleteFollowRequest(ctx, actor.ID, target.ID); err != nil {
			return "", err
		}
		return models.FollowStateNone, nil
	}

	if err := s.socialRepo.CreateFollowRequest(ctx, actor.ID, target.ID); err != nil {
		return "", err
	}
	s.notifier.PublishUser(ctx, target.ID, notifications.EventFollowRequestReceived, map[string]interface{}{
		"from_user": actor.Public(),
	})
	return models.FollowStateRequested, nil
}

// AcceptFollowRequest promotes the pending request from sender to the
// acting receiver into a follow edge. A missing request is a no-op.
func (s *SocialService) AcceptFollowRequest(ctx context.Context, identity string, senderID uint) error {
	receiver, err := resolveActor(ctx, s.userRepo, identity)
	if err != nil {
		return err
	}
	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return err
	}

	accepted, err := s.socialRepo.AcceptRequest(ctx, sender.ID, receiver.ID)
	if err != nil {
		return err
	}
	if accepted {
		s.notifier.PublishUser(ctx, sender.ID, notifications.EventFollowRequestAccepted, map[string]interface{}{
			"by_user": receiver.Public(),
		})
	}
	return nil
}

// DeclineFollowRequest drops the pending request from sender to the
// acting receiver. A missing request is a no-op.
func (s *SocialService) DeclineFollowRequest(ctx context.Context, identity string, senderID uint) error {
	receiver, err := resolveActor(ctx, s.userRepo, identity)
	if err != nil {
		return err
	}
	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return err
	}
	return s.socialRepo.DeleteFollowRequest(ctx, sender.ID, receiver.ID)
}

// ToggleBlock blocks the target if not blocked, unblocks otherwise.
// Returns true when the target ends up blocked. Blocking leaves follow
// edges and pending requests untouched unless block_cascade is on.
func (s *SocialService) ToggleBlock(ctx context.Context, identity string, targetID uint) (bool, error) {
	actor, err := resolveActor(ctx, s.userRepo, identity)
	if err != nil {
		return false, err
	}
	if actor.ID == targetID {
		return false, models.NewValidationError("Cannot block yourself")
	}
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return false, err
	}

	block, err := s.socialRepo.GetBlock(ctx, actor.ID, target.ID)
	if err != nil {
		return false, err
	}
	if block != nil {
		if err := s.socialRepo.DeleteBlock(ctx, actor.ID, target.ID); err != nil {
			return false, err
		}
		return false, nil
	}

	if s.flags.Enabled(featureflags.BlockCascade) {
		if err := s.socialRepo.CreateBlockCascading(ctx, actor.ID, target.ID); err != nil {
			return false, err
		}
		return true, nil
	}
	if err := s.socialRepo.CreateBlock(ctx, actor.ID, target.ID); err != nil {
		return false, err
	}
	return true, nil
}

// IncomingRequests returns pending follow requests addressed to the
// acting user, sender profile included.
func (s *SocialService) IncomingRequests(ctx context.Context, identity string) ([]models.FollowRequest, error) {
	receiver, err := resolveActor(ctx, s.userRepo, identity)
	if err != nil {
		return nil, err
	}
	return s.socialRepo.ListIncomingRequests(ctx, receiver.ID)
}

// RelationshipTo reports the viewer's standing toward the target user.
func (s *SocialService) RelationshipTo(ctx context.Context, identity string, targetID uint) (*Relationship, error) {
	actor, err := resolveActor(ctx, s.userRepo, identity)
	if err != nil {
		return nil, err
	}
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	rel := &Relationship{State: models.FollowStateNone}

	follow, err := s.socialRepo.GetFollow(ctx, actor.ID, target.ID)
	if err != nil {
		return nil, err
	}
	if follow != nil {
		rel.State = models.FollowStateFollowing
	} else {
		request, err := s.socialRepo.GetFollowRequest(ctx, actor.ID, target.ID)
		if err != nil {
			return nil, err
		}
		if request != nil {
			rel.State = models.FollowStateRequested
		}
	}

	reverse, err := s.socialRepo.GetFollow(ctx, target.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	rel.FollowsMe = reverse != nil

	block, err := s.socialRepo.GetBlock(ctx, actor.ID, target.ID)
	if err != nil {
		return nil, err
	}
	rel.Blocked = block != nil

	return rel, nil
}
