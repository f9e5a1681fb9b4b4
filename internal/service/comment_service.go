package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/notifications"
	"ripple/internal/repository"
)

const maxCommentLen = 500

// CommentService provides comment business logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	notifier    *notifications.Notifier
}

type AddCommentInput struct {
	Identity string
	PostID   uint
	Body     string
}

// NewCommentService returns a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	notifier *notifications.Notifier,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// AddComment creates a comment on a post and returns it with the
// owner's profile preloaded for immediate display. Any authenticated
// user may comment on any post.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, models.NewValidationError("Comment body is required")
	}
	if len(body) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 500 characters)")
	}

	actor, err := resolveActor(ctx, s.userRepo, in.Identity)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID, actor.ID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:   body,
		UserID: actor.ID,
		PostID: post.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if post.UserID != actor.ID {
		s.notifier.PublishUser(ctx, post.UserID, notifications.EventPostCommented, map[string]interface{}{
			"post_id": post.ID,
			"by_user": actor.Public(),
		})
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// Comments lists a post's comments newest first.
func (s *CommentService) Comments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}
