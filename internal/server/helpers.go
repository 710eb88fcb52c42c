package server

import (
	"fmt"
	"strconv"
	"time"

	"pitchside/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// predictionsPageSize is the fixed page size for prediction listings.
const predictionsPageSize = 10

// tokenExpiry is how long issued session tokens remain valid.
const tokenExpiry = 48 * time.Hour

// generateToken creates a signed JWT for the given user ID and username.
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(tokenExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// parsePredictionID extracts the :predictionId route parameter. A malformed id
// gets the same public message as a missing record so ids are not probeable.
func (s *Server) parsePredictionID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("predictionId")
	if err != nil || id <= 0 {
		return 0, models.NewBadRequestError(
			fmt.Errorf("invalid prediction id %q", c.Params("predictionId")),
			"Prediction not found")
	}
	return uint(id), nil
}

// callerID returns the authenticated user's id stored by the auth middleware.
func callerID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
