package auth

import (
	"context"

	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/models"
	"cloudvault-api/pkg/redis"
)

// UserService is the subset of the user service the auth service depends on
type UserService interface {
	CreateUser(ctx context.Context, email, username, passwordHash, role string) (*models.User, error)
	GetUserById(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error
	UpdateLastLogin(ctx context.Context, userID string) error
	CountUsers(ctx context.Context) (int64, error)
}

// Service handles authentication operations
type Service struct {
	userService UserService
	cache       redis.Cache
	logger      *logger.Logger
}

// SetupStatus reports whether first-run setup is still required
type SetupStatus struct {
	NeedsSetup bool `json:"needsSetup"`
}
