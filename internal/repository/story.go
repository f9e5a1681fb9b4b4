package repository

import (
	"context"
	"time"

	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// StoryRepository defines the interface for story data operations
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	DeleteByUserID(ctx context.Context, userID uint) error
	Replace(ctx context.Context, story *models.Story) error
	ListVisible(ctx context.Context, userID uint) ([]models.Story, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
}

type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	defer observability.TrackQuery("create", "stories")()
	if err := r.db.WithContext(ctx).Create(story).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// DeleteByUserID removes the user's story regardless of expiry.
func (r *storyRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	defer observability.TrackQuery("delete", "stories")()
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Story{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Replace atomically swaps the user's story: the old one (if any) is
// deleted and the new one created in a single transaction, keeping the
// at-most-one-story invariant even mid-operation.
func (r *storyRepository) Replace(ctx context.Context, story *models.Story) error {
	defer observability.TrackQuery("replace", "stories")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", story.UserID).Delete(&models.Story{}).Error; err != nil {
			return err
		}
		return tx.Create(story).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListVisible returns unexpired stories owned by the user or by anyone
// the user follows. Expiry is a read-time filter, not a purge.
func (r *storyRepository) ListVisible(ctx context.Context, userID uint) ([]models.Story, error) {
	defer observability.TrackQuery("select", "stories")()
	var stories []models.Story
	if err := r.db.WithContext(ctx).
		Where("expires_at > ?", time.Now()).
		Where("user_id = ? OR user_id IN (SELECT following_id FROM followers WHERE follower_id = ?)", userID, userID).
		Preload("User").
		Order("created_at DESC").
		Find(&stories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stories, nil
}

func (r *storyRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Story{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
