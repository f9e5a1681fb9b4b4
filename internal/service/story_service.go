package service

import (
	"context"
	"strings"
	"time"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/repository"
)

// StoryService provides story business logic.
type StoryService struct {
	storyRepo repository.StoryRepository
	userRepo  repository.UserRepository
}

// NewStoryService returns a new StoryService.
func NewStoryService(storyRepo repository.StoryRepository, userRepo repository.UserRepository) *StoryService {
	return &StoryService{storyRepo: storyRepo, userRepo: userRepo}
}

// AddStory replaces the acting user's story with a new one expiring in
// 24 hours. Any previous story is deleted regardless of expiry, which
// keeps the at-most-one-story invariant hard.
func (s *StoryService) AddStory(ctx context.Context, identity, imageURL string) (*models.Story, error) {
	if strings.TrimSpace(imageURL) == "" {
		return nil, models.NewValidationError("Story image is required")
	}

	actor, err := resolveActor(ctx, s.userRepo, identity)
	if err != nil {
		return nil, err
	}

	story := &models.Story{
		ImageURL:  imageURL,
		UserID:    actor.ID,
		ExpiresAt: time.Now().Add(models.StoryLifetime),
	}
	if err := s.storyRepo.Replace(ctx, story); err != nil {
		return nil, err
	}

	cache.InvalidateStories(ctx, actor.ID)

	story.User = *actor
	return story, nil
}

// Stories lists unexpired stories visible to the acting user: their own
// plus those of everyone they follow.
func (s *StoryService) Stories(ctx context.Context, identity string) ([]models.Story, error) {
	actor, err := resolveActor(ctx, s.userRepo, identity)
	if err != nil {
		return nil, err
	}

	var stories []models.Story
	err = cache.Aside(ctx, cache.StoriesKey(actor.ID), &stories, cache.StoriesTTL, func() error {
		var fetchErr error
		stories, fetchErr = s.storyRepo.ListVisible(ctx, actor.ID)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return stories, nil
}
