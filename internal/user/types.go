package user

import (
	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/models"
	"cloudvault-api/pkg/db"
	"cloudvault-api/pkg/redis"
)

// Service defines the user service
type Service struct {
	repo   Repository
	cache  redis.Cache
	logger *logger.Logger
}

// Repository defines the user repository interface
type Repository interface {
	// User operations
	SaveUser(user *models.User) (*models.User, error)
	UpdateUserById(id string, user *models.User) (*models.User, error)
	FindUserByID(id string) (*models.User, error)
	FindUserOneWhere(email *string, username *string) (*models.User, error)
	DeleteUser(id string) error
	CountUsers() (int64, error)

	// Storage operations
	CreateUserStorage(storage *models.UserStorage) error
	GetUserStorage(userID string) (*models.UserStorage, error)
	UpdateUserStorage(storage *models.UserStorage) error
}

// UserValidator is the interface for user validation
type UserValidator interface {
	ValidateCreate(email, username, password string) error
	ValidateUpdate(user *models.User) error
	ValidateEmail(email string) bool
	ValidateUsername(username string) bool
	ValidatePassword(password string) bool
}

// userValidator is the concrete implementation of UserValidator
type userValidator struct{}

// repo is the concrete implementation of Repository
type repo struct {
	userRepo    db.Repository[models.User]
	storageRepo db.Repository[models.UserStorage]
}
