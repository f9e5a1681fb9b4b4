package repository

import (
	"context"
	"errors"

	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// SocialRepository defines the interface for follow, follow-request and
// block data operations.
type SocialRepository interface {
	GetFollow(ctx context.Context, followerID, followingID uint) (*models.Follower, error)
	CreateFollow(ctx context.Context, followerID, followingID uint) error
	DeleteFollow(ctx context.Context, followerID, followingID uint) error
	FollowingIDs(ctx context.Context, userID uint) ([]uint, error)

	GetFollowRequest(ctx context.Context, senderID, receiverID uint) (*models.FollowRequest, error)
	CreateFollowRequest(ctx context.Context, senderID, receiverID uint) error
	DeleteFollowRequest(ctx context.Context, senderID, receiverID uint) error
	ListIncomingRequests(ctx context.Context, receiverID uint) ([]models.FollowRequest, error)
	// AcceptRequest promotes a pending request to a follow edge in one
	// transaction. Returns false without error when no request exists.
	AcceptRequest(ctx context.Context, senderID, receiverID uint) (bool, error)

	GetBlock(ctx context.Context, blockerID, blockedID uint) (*models.Block, error)
	CreateBlock(ctx context.Context, blockerID, blockedID uint) error
	DeleteBlock(ctx context.Context, blockerID, blockedID uint) error
	// CreateBlockCascading additionally severs follow edges and pending
	// requests in both directions, in one transaction. Guarded by the
	// block_cascade feature flag.
	CreateBlockCascading(ctx context.Context, blockerID, blockedID uint) error
}

type socialRepository struct {
	db *gorm.DB
}

// NewSocialRepository creates a new social repository
func NewSocialRepository(db *gorm.DB) SocialRepository {
	return &socialRepository{db: db}
}

func (r *socialRepository) GetFollow(ctx context.Context, followerID, followingID uint) (*models.Follower, error) {
	var follow models.Follower
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No edge exists
		}
		return nil, models.NewInternalError(err)
	}
	return &follow, nil
}

func (r *socialRepository) CreateFollow(ctx context.Context, followerID, followingID uint) error {
	defer observability.TrackQuery("create", "followers")()
	edge := &models.Follower{FollowerID: followerID, FollowingID: followingID}
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *socialRepository) DeleteFollow(ctx context.Context, followerID, followingID uint) error {
	defer observability.TrackQuery("delete", "followers")()
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follower{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *socialRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follower{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *socialRepository) GetFollowRequest(ctx context.Context, senderID, receiverID uint) (*models.FollowRequest, error) {
	var request models.FollowRequest
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No pending request
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *socialRepository) CreateFollowRequest(ctx context.Context, senderID, receiverID uint) error {
	defer observability.TrackQuery("create", "follow_requests")()
	request := &models.FollowRequest{SenderID: senderID, ReceiverID: receiverID}
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *socialRepository) DeleteFollowRequest(ctx context.Context, senderID, receiverID uint) error {
	defer observability.TrackQuery("delete", "follow_requests")()
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Delete(&models.FollowRequest{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *socialRepository) ListIncomingRequests(ctx context.Context, receiverID uint) ([]models.FollowRequest, error) {
	defer observability.TrackQuery("select", "follow_requests")()
	var requests []models.FollowRequest
	if err := r.db.WithContext(ctx).
		Where("receiver_id = ?", receiverID).
		Preload("Sender").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

// AcceptRequest deletes the pending request and creates the follow edge
// in a single transaction so the pair of writes is never observably
// partial.
func (r *socialRepository) AcceptRequest(ctx context.Context, senderID, receiverID uint) (bool, error) {
	defer observability.TrackQuery("accept", "follow_requests")()
	accepted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
			Delete(&models.FollowRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Nothing pending; leave accepted false and write nothing.
			return nil
		}
		accepted = true
		return tx.Create(&models.Follower{FollowerID: senderID, FollowingID: receiverID}).Error
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return accepted, nil
}

func (r *socialRepository) GetBlock(ctx context.Context, blockerID, blockedID uint) (*models.Block, error) {
	var block models.Block
	if err := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		First(&block).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not blocked
		}
		return nil, models.NewInternalError(err)
	}
	return &block, nil
}

func (r *socialRepository) CreateBlock(ctx context.Context, blockerID, blockedID uint) error {
	defer observability.TrackQuery("create", "blocks")()
	block := &models.Block{BlockerID: blockerID, BlockedID: blockedID}
	if err := r.db.WithContext(ctx).Create(block).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *socialRepository) DeleteBlock(ctx context.Context, blockerID, blockedID uint) error {
	defer observability.TrackQuery("delete", "blocks")()
	if err := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *socialRepository) CreateBlockCascading(ctx context.Context, blockerID, blockedID uint) error {
	defer observability.TrackQuery("create", "blocks")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("(follower_id = ? AND following_id = ?) OR (follower_id = ? AND following_id = ?)",
				blockerID, blockedID, blockedID, blockerID).
			Delete(&models.Follower{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				blockerID, blockedID, blockedID, blockerID).
			Delete(&models.FollowRequest{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Block{BlockerID: blockerID, BlockedID: blockedID}).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
