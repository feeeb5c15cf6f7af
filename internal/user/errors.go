package user

import (
	"errors"
)

// Custom error types for the user package
var (
	// ErrInvalidInput indicates the provided input is invalid
	ErrInvalidInput = errors.New("Invalid input provided")

	// ErrUserNotFound indicates the user was not found
	ErrUserNotFound = errors.New("User not found")

	// ErrInvalidEmail indicates the provided email is invalid
	ErrInvalidEmail = errors.New("Invalid email format")

	// ErrInvalidUsername indicates the provided username is invalid
	ErrInvalidUsername = errors.New("Invalid username format")

	// ErrInvalidPassword indicates the provided password is too weak
	ErrInvalidPassword = errors.New("Invalid password")

	// ErrEmailAlreadyExists indicates the email is already in use
	ErrEmailAlreadyExists = errors.New("Email already exists")

	// ErrUsernameAlreadyExists indicates the username is already in use
	ErrUsernameAlreadyExists = errors.New("Username already exists")

	// ErrCacheError indicates an error occurred with the Redis cache
	ErrCacheError = errors.New("Cache operation failed")

	// ErrDatabaseError indicates an error occurred with the database
	ErrDatabaseError = errors.New("Database operation failed")

	// ErrStorageNotFound indicates the user's storage information was not found
	ErrStorageNotFound = errors.New("User storage not found")

	// ErrUnauthorized indicates the user is not authorized for the operation
	ErrUnauthorized = errors.New("User not authorized for this operation")

	// ErrAccountDeactivated indicates the user account is deactivated
	ErrAccountDeactivated = errors.New("User account is deactivated")
)
