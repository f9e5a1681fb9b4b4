// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"strings"

	"ripple/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// IdentityLocal is the Fiber locals key holding the external identity
// of the authenticated caller. Domain operations resolve it to an
// internal user; the internal id is never taken from the client.
const IdentityLocal = "identity"

// AuthRequired enforces authentication for protected routes. The
// session token is issued by the identity provider; its "sub" claim is
// the caller's external identity reference.
func AuthRequired(c *fiber.Ctx) error {
	identity, errMsg := identityFromHeader(c)
	if errMsg != "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": errMsg,
		})
	}
	c.Locals(IdentityLocal, identity)
	return c.Next()
}

// OptionalAuth resolves the identity when a token is present but lets
// anonymous requests through. Aggregated reads render differently for
// signed-in viewers (liked flags, personalized feed).
func OptionalAuth(c *fiber.Ctx) error {
	if c.Get("Authorization") != "" {
		if identity, errMsg := identityFromHeader(c); errMsg == "" {
			c.Locals(IdentityLocal, identity)
		}
	}
	return c.Next()
}

// identityFromHeader validates the bearer token and extracts the
// external identity. A non-empty second return value is the rejection
// reason.
func identityFromHeader(c *fiber.Ctx) (string, string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", "Authorization header required"
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "Invalid authorization header format"
	}

	tokenString := parts[1]

	// Parse and validate token
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return "", "Invalid or expired token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "Invalid token claims"
	}

	// The subject claim carries the external identity reference.
	subClaim, ok := claims["sub"]
	if !ok {
		return "", "Invalid token structure - missing subject"
	}

	identity, ok := subClaim.(string)
	if !ok || identity == "" {
		return "", "Invalid token subject"
	}

	return identity, ""
}
