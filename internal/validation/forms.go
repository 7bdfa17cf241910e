// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateUsername checks username format.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-32 characters and contain only letters, numbers, and underscores")
	}
	return nil
}

// ValidatePassword checks if a password meets minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	return nil
}

// ValidateEmail checks email address format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("a valid email address is required")
	}
	return nil
}

// ValidatePostFields enforces the Post invariant: non-empty title and content.
// The store is schema-flexible, so the boundary owns this check.
func ValidatePostFields(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("post title is required")
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("post content is required")
	}
	return nil
}
