package service

import (
	"context"
	"strings"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/notifications"
	"ripple/internal/repository"
)

const maxPostLen = 500

// PostService provides post, feed and like business logic.
type PostService struct {
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	socialRepo repository.SocialRepository
	notifier   *notifications.Notifier
}

type CreatePostInput struct {
	Identity string
	Body     string
	ImageURL string
}

type FeedInput struct {
	Identity string
	Limit    int
	Offset   int
}

// NewPostService returns a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	socialRepo repository.SocialRepository,
	notifier *notifications.Notifier,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		userRepo:   userRepo,
		socialRepo: socialRepo,
		notifier:   notifier,
	}
}

// CreatePost validates and inserts a new post, then marks the author's
// cached feed stale.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, models.NewValidationError("Post body is required")
	}
	if len(body) > maxPostLen {
		return nil, models.NewValidationError("Post body too long (max 500 characters)")
	}

	actor, err := resolveActor(ctx, s.userRepo, in.Identity)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Body:     body,
		ImageURL: in.ImageURL,
		UserID:   actor.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.signalFeedStale(ctx, actor)

	return s.postRepo.GetByID(ctx, post.ID, actor.ID)
}

// DeletePost removes a post owned by the acting user. Ownership is
// checked against the loaded record, never against client input.
func (s *PostService) DeletePost(ctx context.Context, identity string, postID uint) error {
	actor, err := resolveActor(ctx, s.userRepo, identity)
	if err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(ctx, postID, actor.ID)
	if err != nil {
		return err
	}
	if post.UserID != actor.ID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.signalFeedStale(ctx, actor)
	return nil
}

// ToggleLike creates the like if absent, removes it otherwise, and
// returns the post with refreshed counters.
func (s *PostService) ToggleLike(ctx context.Context, identity string, postID uint) (*models.Post, error) {
	actor, err := resolveActor(ctx, s.userRepo, identity)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID, actor.ID)
	if err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, actor.ID, postID)
	if err != nil {
		return nil, err
	}
	if liked {
		if err := s.postRepo.Unlike(ctx, actor.ID, postID); err != nil {
			return nil, err
		}
	} else {
		if err := s.postRepo.Like(ctx, actor.ID, postID); err != nil {
			return nil, err
		}
		if post.UserID != actor.ID {
			s.notifier.PublishUser(ctx, post.UserID, notifications.EventPostLiked, map[string]interface{}{
				"post_id": post.ID,
				"by_user": actor.Public(),
			})
		}
	}

	return s.postRepo.GetByID(ctx, postID, actor.ID)
}

// Feed returns the newest-first posts of the acting user and everyone
// they follow, cache-aside cached for the first page.
func (s *PostService) Feed(ctx context.Context, in FeedInput) ([]*models.Post, error) {
	actor, err := resolveActor(ctx, s.userRepo, in.Identity)
	if err != nil {
		return nil, err
	}

	limit := in.Limit
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	fetch := func() ([]*models.Post, error) {
		followingIDs, err := s.socialRepo.FollowingIDs(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		ids := append([]uint{actor.ID}, followingIDs...)
		return s.postRepo.Feed(ctx, ids, limit, in.Offset, actor.ID)
	}

	if in.Offset > 0 {
		return fetch()
	}

	var posts []*models.Post
	err = cache.Aside(ctx, cache.FeedKey(actor.ID), &posts, cache.FeedTTL, func() error {
		var fetchErr error
		posts, fetchErr = fetch()
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// UserPosts lists a user's posts newest first. The viewer identity is
// optional and only affects the liked flag.
func (s *PostService) UserPosts(ctx context.Context, username, viewerIdentity string, limit, offset int) ([]*models.Post, error) {
	if _, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	var viewerID uint
	if viewerIdentity != "" {
		if viewer, err := s.userRepo.GetByExternalID(ctx, viewerIdentity); err == nil {
			viewerID = viewer.ID
		}
	}

	return s.postRepo.GetByUsername(ctx, username, limit, offset, viewerID)
}

// signalFeedStale invalidates the author's cached feed page and tells
// connected clients to refetch. Followers' feed caches expire via TTL.
func (s *PostService) signalFeedStale(ctx context.Context, author *models.User) {
	cache.InvalidateFeed(ctx, author.ID)
	cache.InvalidateProfile(ctx, author.Username)
	s.notifier.PublishUser(ctx, author.ID, notifications.EventFeedStale, nil)
}
