package server

import (
	"net/http"
	"testing"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_RequiresAuth(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/posts", "", fiber.Map{"body": "hello"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreatePost(t *testing.T) {
	_, app, db := newTestServer(t)
	alice := createServerTestUser(t, db, "alice")

	resp := doJSON(t, app, http.MethodPost, "/api/posts", tokenFor(t, alice),
		fiber.Map{"body": "hello world"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var post models.Post
	decodeBody(t, resp, &post)
	assert.Equal(t, "hello world", post.Body)
	assert.Equal(t, alice.ID, post.UserID)

	t.Run("empty body rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", tokenFor(t, alice),
			fiber.Map{"body": "  "})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeletePost_OwnerOnly(t *testing.T) {
	_, app, db := newTestServer(t)
	alice := createServerTestUser(t, db, "alice")
	bob := createServerTestUser(t, db, "bob")

	post := &models.Post{Body: "mine", UserID: alice.ID}
	require.NoError(t, db.Create(post).Error)

	resp := doJSON(t, app, http.MethodDelete, "/api/posts/1", tokenFor(t, bob), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/posts/1", tokenFor(t, alice), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestToggleLike(t *testing.T) {
	_, app, db := newTestServer(t)
	alice := createServerTestUser(t, db, "alice")

	post := &models.Post{Body: "likeable", UserID: alice.ID}
	require.NoError(t, db.Create(post).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/posts/1/like", tokenFor(t, alice), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var liked models.Post
	decodeBody(t, resp, &liked)
	assert.True(t, liked.Liked)
	assert.Equal(t, 1, liked.LikesCount)

	resp = doJSON(t, app, http.MethodPost, "/api/posts/1/like", tokenFor(t, alice), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var unliked models.Post
	decodeBody(t, resp, &unliked)
	assert.False(t, unliked.Liked)
	assert.Equal(t, 0, unliked.LikesCount)
}

func TestGetFeed(t *testing.T) {
	_, app, db := newTestServer(t)
	alice := createServerTestUser(t, db, "alice")
	bob := createServerTestUser(t, db, "bob")
	carol := createServerTestUser(t, db, "carol")

	require.NoError(t, db.Create(&models.Follower{FollowerID: alice.ID, FollowingID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.Post{Body: "own", UserID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.Post{Body: "followed", UserID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.Post{Body: "stranger", UserID: carol.ID}).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/feed", tokenFor(t, alice), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.Post
	decodeBody(t, resp, &posts)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.NotEqual(t, "stranger", p.Body)
	}
}

func TestGetUserPosts_Public(t *testing.T) {
	_, app, db := newTestServer(t)
	alice := createServerTestUser(t, db, "alice")
	require.NoError(t, db.Create(&models.Post{Body: "visible", UserID: alice.ID}).Error)

	// No token at all; the route is public.
	resp := doJSON(t, app, http.MethodGet, "/api/users/alice/posts", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.Post
	decodeBody(t, resp, &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, "visible", posts[0].Body)
}
