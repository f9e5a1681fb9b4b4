package service

import (
	"context"
	"errors"
	"testing"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn          func(context.Context, *models.User) error
	getByIDFn         func(context.Context, uint) (*models.User, error)
	getByExternalIDFn func(context.Context, string) (*models.User, error)
	getByUsernameFn   func(context.Context, string) (*models.User, error)
	updateIdentityFn  func(context.Context, string, string, string) error
	updateProfileFn   func(context.Context, string, map[string]interface{}) error
	getCountsFn       func(context.Context, uint) (*repository.UserCounts, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return s.getByExternalIDFn(ctx, externalID)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) UpdateIdentity(ctx context.Context, externalID, username, avatar string) error {
	return s.updateIdentityFn(ctx, externalID, username, avatar)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, externalID string, fields map[string]interface{}) error {
	return s.updateProfileFn(ctx, externalID, fields)
}
func (s *userRepoStub) GetCounts(ctx context.Context, userID uint) (*repository.UserCounts, error) {
	return s.getCountsFn(ctx, userID)
}

// Well-known identities used across the service tests.
const (
	actorIdentity  = "user_ext_actor"
	actorID        = uint(1)
	targetID       = uint(2)
	unknownUserID  = uint(99)
	actorUsername  = "alice"
	targetUsername = "bob"
)

func noopUserRepo() *userRepoStub {
	actor := &models.User{ID: actorID, ExternalID: actorIdentity, Username: actorUsername}
	target := &models.User{ID: targetID, ExternalID: "user_ext_target", Username: targetUsername}
	return &userRepoStub{
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			switch id {
			case actorID:
				return actor, nil
			case targetID:
				return target, nil
			}
			return nil, models.NewNotFoundError("User", id)
		},
		getByExternalIDFn: func(_ context.Context, externalID string) (*models.User, error) {
			if externalID == actorIdentity {
				return actor, nil
			}
			return nil, models.NewNotFoundError("User", externalID)
		},
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			switch username {
			case actorUsername:
				return actor, nil
			case targetUsername:
				return target, nil
			}
			return nil, models.NewNotFoundError("User", username)
		},
		updateIdentityFn: func(_ context.Context, _, _, _ string) error { return nil },
		updateProfileFn:  func(_ context.Context, _ string, _ map[string]interface{}) error { return nil },
		getCountsFn: func(_ context.Context, _ uint) (*repository.UserCounts, error) {
			return &repository.UserCounts{}, nil
		},
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint, uint) (*models.Post, error)
	deleteFn        func(context.Context, uint) error
	feedFn          func(context.Context, []uint, int, int, uint) ([]*models.Post, error)
	getByUsernameFn func(context.Context, string, int, int, uint) ([]*models.Post, error)
	isLikedFn       func(context.Context, uint, uint) (bool, error)
	likeFn          func(context.Context, uint, uint) error
	unlikeFn        func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Feed(ctx context.Context, userIDs []uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.feedFn(ctx, userIDs, limit, offset, currentUserID)
}
func (s *postRepoStub) GetByUsername(ctx context.Context, username string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUsernameFn(ctx, username, limit, offset, currentUserID)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: actorID}, nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		feedFn: func(_ context.Context, _ []uint, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		getByUsernameFn: func(_ context.Context, _ string, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		isLikedFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:    func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:  func(_ context.Context, _, _ uint) error { return nil },
	}
}

// socialRepoStub is a stub for repository.SocialRepository.
type socialRepoStub struct {
	getFollowFn            func(context.Context, uint, uint) (*models.Follower, error)
	createFollowFn         func(context.Context, uint, uint) error
	deleteFollowFn         func(context.Context, uint, uint) error
	followingIDsFn         func(context.Context, uint) ([]uint, error)
	getFollowRequestFn     func(context.Context, uint, uint) (*models.FollowRequest, error)
	createFollowRequestFn  func(context.Context, uint, uint) error
	deleteFollowRequestFn  func(context.Context, uint, uint) error
	listIncomingRequestsFn func(context.Context, uint) ([]models.FollowRequest, error)
	acceptRequestFn        func(context.Context, uint, uint) (bool, error)
	getBlockFn             func(context.Context, uint, uint) (*models.Block, error)
	createBlockFn          func(context.Context, uint, uint) error
	deleteBlockFn          func(context.Context, uint, uint) error
	createBlockCascadingFn func(context.Context, uint, uint) error
}

func (s *socialRepoStub) GetFollow(ctx context.Context, followerID, followingID uint) (*models.Follower, error) {
	return s.getFollowFn(ctx, followerID, followingID)
}
func (s *socialRepoStub) CreateFollow(ctx context.Context, followerID, followingID uint) error {
	return s.createFollowFn(ctx, followerID, followingID)
}
func (s *socialRepoStub) DeleteFollow(ctx context.Context, followerID, followingID uint) error {
	return s.deleteFollowFn(ctx, followerID, followingID)
}
func (s *socialRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, userID)
}
func (s *socialRepoStub) GetFollowRequest(ctx context.Context, senderID, receiverID uint) (*models.FollowRequest, error) {
	return s.getFollowRequestFn(ctx, senderID, receiverID)
}
func (s *socialRepoStub) CreateFollowRequest(ctx context.Context, senderID, receiverID uint) error {
	return s.createFollowRequestFn(ctx, senderID, receiverID)
}
func (s *socialRepoStub) DeleteFollowRequest(ctx context.Context, senderID, receiverID uint) error {
	return s.deleteFollowRequestFn(ctx, senderID, receiverID)
}
func (s *socialRepoStub) ListIncomingRequests(ctx context.Context, receiverID uint) ([]models.FollowRequest, error) {
	return s.listIncomingRequestsFn(ctx, receiverID)
}
func (s *socialRepoStub) AcceptRequest(ctx context.Context, senderID, receiverID uint) (bool, error) {
	return s.acceptRequestFn(ctx, senderID, receiverID)
}
func (s *socialRepoStub) GetBlock(ctx context.Context, blockerID, blockedID uint) (*models.Block, error) {
	return s.getBlockFn(ctx, blockerID, blockedID)
}
func (s *socialRepoStub) CreateBlock(ctx context.Context, blockerID, blockedID uint) error {
	return s.createBlockFn(ctx, blockerID, blockedID)
}
func (s *socialRepoStub) DeleteBlock(ctx context.Context, blockerID, blockedID uint) error {
	return s.deleteBlockFn(ctx, blockerID, blockedID)
}
func (s *socialRepoStub) CreateBlockCascading(ctx context.Context, blockerID, blockedID uint) error {
	return s.createBlockCascadingFn(ctx, blockerID, blockedID)
}

func noopSocialRepo() *socialRepoStub {
	return &socialRepoStub{
		getFollowFn:            func(_ context.Context, _, _ uint) (*models.Follower, error) { return nil, nil },
		createFollowFn:         func(_ context.Context, _, _ uint) error { return nil },
		deleteFollowFn:         func(_ context.Context, _, _ uint) error { return nil },
		followingIDsFn:         func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		getFollowRequestFn:     func(_ context.Context, _, _ uint) (*models.FollowRequest, error) { return nil, nil },
		createFollowRequestFn:  func(_ context.Context, _, _ uint) error { return nil },
		deleteFollowRequestFn:  func(_ context.Context, _, _ uint) error { return nil },
		listIncomingRequestsFn: func(_ context.Context, _ uint) ([]models.FollowRequest, error) { return nil, nil },
		acceptRequestFn:        func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		getBlockFn:             func(_ context.Context, _, _ uint) (*models.Block, error) { return nil, nil },
		createBlockFn:          func(_ context.Context, _, _ uint) error { return nil },
		deleteBlockFn:          func(_ context.Context, _, _ uint) error { return nil },
		createBlockCascadingFn: func(_ context.Context, _, _ uint) error { return nil },
	}
}

// storyRepoStub is a stub for repository.StoryRepository.
type storyRepoStub struct {
	createFn         func(context.Context, *models.Story) error
	deleteByUserIDFn func(context.Context, uint) error
	replaceFn        func(context.Context, *models.Story) error
	listVisibleFn    func(context.Context, uint) ([]models.Story, error)
	countByUserIDFn  func(context.Context, uint) (int64, error)
}

func (s *storyRepoStub) Create(ctx context.Context, story *models.Story) error {
	return s.createFn(ctx, story)
}
func (s *storyRepoStub) DeleteByUserID(ctx context.Context, userID uint) error {
	return s.deleteByUserIDFn(ctx, userID)
}
func (s *storyRepoStub) Replace(ctx context.Context, story *models.Story) error {
	return s.replaceFn(ctx, story)
}
func (s *storyRepoStub) ListVisible(ctx context.Context, userID uint) ([]models.Story, error) {
	return s.listVisibleFn(ctx, userID)
}
func (s *storyRepoStub) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	return s.countByUserIDFn(ctx, userID)
}

func noopStoryRepo() *storyRepoStub {
	return &storyRepoStub{
		createFn:         func(_ context.Context, _ *models.Story) error { return nil },
		deleteByUserIDFn: func(_ context.Context, _ uint) error { return nil },
		replaceFn:        func(_ context.Context, _ *models.Story) error { return nil },
		listVisibleFn:    func(_ context.Context, _ uint) ([]models.Story, error) { return nil, nil },
		countByUserIDFn:  func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func assertAuthenticationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "AUTHENTICATION_REQUIRED")
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "FORBIDDEN")
}
