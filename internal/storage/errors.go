package storage

import (
	"errors"
)

var (
	// ErrInvalidInput indicates the provided input is invalid
	ErrInvalidInput = errors.New("Invalid input provided")

	// ErrStorageNotFound indicates storage tracking was not found for the user
	ErrStorageNotFound = errors.New("Storage not found")

	// ErrQuotaExceeded indicates the operation would exceed the user's quota
	ErrQuotaExceeded = errors.New("Storage quota exceeded")

	// ErrDatabaseError indicates an error occurred with the database
	ErrDatabaseError = errors.New("Database operation failed")
)
