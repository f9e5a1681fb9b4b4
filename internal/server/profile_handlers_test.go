package server

import (
	"net/http"
	"testing"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	_, app, db := newTestServer(t)
	alice := createServerTestUser(t, db, "alice")
	bob := createServerTestUser(t, db, "bob")

	require.NoError(t, db.Create(&models.Follower{FollowerID: bob.ID, FollowingID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.Post{Body: "hi", UserID: alice.ID}).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/users/alice", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var card struct {
		User   models.User           `json:"user"`
		Counts repository.UserCounts `json:"counts"`
	}
	decodeBody(t, resp, &card)
	assert.Equal(t, "alice", card.User.Username)
	assert.Equal(t, int64(1), card.Counts.Followers)
	assert.Equal(t, int64(1), card.Counts.Posts)

	t.Run("unknown user", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/ghost", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateMyProfile(t *testing.T) {
	_, app, db := newTestServer(t)
	alice := createServerTestUser(t, db, "alice")

	resp := doJSON(t, app, http.MethodPut, "/api/users/me", tokenFor(t, alice),
		fiber.Map{"name": "Alice", "city": "Lisbon"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.User
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "Lisbon", updated.City)

	t.Run("invalid website", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/users/me", tokenFor(t, alice),
			fiber.Map{"website": "not a url"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("requires auth", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/users/me", "",
			fiber.Map{"name": "Mallory"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestStoriesEndpoint(t *testing.T) {
	_, app, db := newTestServer(t)
	alice := createServerTestUser(t, db, "alice")

	resp := doJSON(t, app, http.MethodPost, "/api/stories", tokenFor(t, alice),
		fiber.Map{"image_url": "https://cdn.example.com/s1.png"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/stories", tokenFor(t, alice), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stories []models.Story
	decodeBody(t, resp, &stories)
	require.Len(t, stories, 1)
	assert.Equal(t, "https://cdn.example.com/s1.png", stories[0].ImageURL)
}

func TestCommentsEndpoint(t *testing.T) {
	_, app, db := newTestServer(t)
	alice := createServerTestUser(t, db, "alice")
	require.NoError(t, db.Create(&models.Post{Body: "post", UserID: alice.ID}).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/posts/1/comments", tokenFor(t, alice),
		fiber.Map{"body": "nice one"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/posts/1/comments", tokenFor(t, alice), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var comments []models.Comment
	decodeBody(t, resp, &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice one", comments[0].Body)
}
