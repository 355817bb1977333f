// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,64}$`)

// ValidateUsername checks if a username is acceptable
func ValidateUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// ValidateRating checks that a rating score is on the 1-5 scale
func ValidateRating(score int) bool {
	return score >= 1 && score <= 5
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
