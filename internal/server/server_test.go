package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testJWTSecret     = "test-secret-key-for-handler-tests-1234"
	testWebhookSecret = "whsec_dGVzdC1zaWduaW5nLWtleS0xMjM0NTY3OA=="
)

func testConfig() *config.Config {
	return &config.Config{
		Port:          "0",
		JWTSecret:     testJWTSecret,
		WebhookSecret: testWebhookSecret,
		Env:           "test",
	}
}

// newTestServer wires a Server against an in-memory database, no Redis.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Collections()...))

	srv, err := NewServerWithDeps(testConfig(), db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app, db
}

var testUserSeq int

func createServerTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	testUserSeq++
	user := &models.User{
		ExternalID: fmt.Sprintf("user_ext_%s_%d", username, testUserSeq),
		Username:   username,
		Avatar:     "/noAvatar.png",
		Cover:      "/noCover.png",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// tokenFor issues a session token whose subject is the user's external
// identity, like the identity provider would.
func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ExternalID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}
