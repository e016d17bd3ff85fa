package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/viraldaily/viraldaily-go/internal/model"
)

// Request bounds for the videos endpoint.
const (
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 100
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidatePlatform parses an optional platform filter. An empty value means
// no filter. A non-existent platform is an invalid request, never a silent
// empty result.
func ValidatePlatform(s string) (*model.Platform, string) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil, ""
	}
	platform, ok := model.ParsePlatform(s)
	if !ok {
		return nil, "platform must be one of: youtube, tiktok, twitter"
	}
	return &platform, ""
}

// ValidateLimit parses an optional limit value, applying the default when
// absent.
func ValidateLimit(s string) (int, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLimit, ""
	}
	limit, err := strconv.Atoi(s)
	if err != nil {
		return 0, "limit must be an integer"
	}
	if limit < MinLimit || limit > MaxLimit {
		return 0, "limit must be between 1 and 100"
	}
	return limit, ""
}
