// Package middleware provides authentication, logging and rate-limiting middleware.
package middleware

import (
	"errors"
	"strconv"
	"strings"

	"pitchside/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired returns a middleware that enforces bearer-token authentication
// for protected routes. On success the caller identity is stored in
// c.Locals("userID") as a uint.
func AuthRequired(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.NewUnauthorizedError(
				errors.New("authorization header missing"), "Missing token")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return models.NewUnauthorizedError(
				errors.New("missing bearer in token"), "Invalid token")
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			return models.NewUnauthorizedError(err, "Invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.NewUnauthorizedError(
				errors.New("invalid token claims"), "Invalid token")
		}

		// Caller identity lives in the "sub" claim (RFC 7519 subject).
		subStr, ok := claims["sub"].(string)
		if !ok {
			return models.NewUnauthorizedError(
				errors.New("invalid token structure, missing subject"), "Invalid token")
		}

		userID, err := strconv.ParseUint(subStr, 10, 32)
		if err != nil {
			return models.NewUnauthorizedError(err, "Invalid token")
		}

		c.Locals("userID", uint(userID))

		return c.Next()
	}
}
