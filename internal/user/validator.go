package user

import (
	"regexp"
	"strings"

	"cloudvault-api/internal/models"
)

// NewUserValidator creates a new user validator
func NewUserValidator() UserValidator {
	return &userValidator{}
}

// ValidateCreate validates user creation parameters
func (v *userValidator) ValidateCreate(email, username, password string) error {
	if !v.ValidateEmail(email) {
		return ErrInvalidEmail
	}

	if !v.ValidateUsername(username) {
		return ErrInvalidUsername
	}

	if !v.ValidatePassword(password) {
		return ErrInvalidPassword
	}

	return nil
}

// ValidateUpdate validates user update parameters
func (v *userValidator) ValidateUpdate(user *models.User) error {
	if user == nil || user.ID == "" {
		return ErrInvalidInput
	}

	if user.Email != "" && !v.ValidateEmail(user.Email) {
		return ErrInvalidEmail
	}

	if user.Username != "" && !v.ValidateUsername(user.Username) {
		return ErrInvalidUsername
	}

	return nil
}

// ValidateEmail validates an email address
func (v *userValidator) ValidateEmail(email string) bool {
	// Email cannot be empty
	if email == "" {
		return false
	}

	// Normalize before validation
	email = strings.ToLower(strings.TrimSpace(email))

	// Basic email regex pattern
	pattern := `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`
	match, _ := regexp.MatchString(pattern, email)

	return match
}

// ValidateUsername validates a username
func (v *userValidator) ValidateUsername(username string) bool {
	// Username cannot be empty
	if username == "" {
		return false
	}

	// Trim spaces before validation
	username = strings.TrimSpace(username)

	// Username must be at least 3 characters and at most 30 characters
	if len(username) < 3 || len(username) > 30 {
		return false
	}

	// Username can only contain alphanumeric characters, underscores, and dashes
	pattern := `^[a-zA-Z0-9_\-]+$`
	match, _ := regexp.MatchString(pattern, username)

	return match
}

// ValidatePassword enforces the minimum password requirements
func (v *userValidator) ValidatePassword(password string) bool {
	// Passwords must be 8-72 characters (bcrypt input limit)
	return len(password) >= 8 && len(password) <= 72
}
