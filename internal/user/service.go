package user

import (
	"context"
	"errors"
	"time"

	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/models"
	"cloudvault-api/pkg/redis"

	"gorm.io/gorm"
)

// Default storage quota for new users (3 GiB)
const DefaultMaxSpace = int64(3 * 1024 * 1024 * 1024)

// NewService creates a new user service
func NewService(repo Repository, cache redis.Cache, logger *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// GetUserById retrieves a user by ID with cache lookup
func (s *Service) GetUserById(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	// Try to get from cache first
	user, err := s.getUserFromCache(ctx, userID)
	if err == nil {
		return user, nil
	}

	// Not in cache, get from database
	user, err = s.repo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseError
	}

	// Cache for future lookups
	_ = s.cacheUser(ctx, user)

	return user, nil
}

// GetUserByEmail retrieves a user by email with cache lookup
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, ErrInvalidInput
	}

	// Resolve the ID via the email lookup cache
	userID, err := s.getUserIdFromEmailCache(ctx, email)
	if err == nil {
		return s.GetUserById(ctx, userID)
	}

	// Not in cache, get from database
	user, err := s.repo.FindUserOneWhere(&email, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseError
	}

	_ = s.cacheUser(ctx, user)

	return user, nil
}

// GetUserByUsername retrieves a user by username with cache lookup
func (s *Service) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, ErrInvalidInput
	}

	// Resolve the ID via the username lookup cache
	userID, err := s.getUserIdFromUsernameCache(ctx, username)
	if err == nil {
		return s.GetUserById(ctx, userID)
	}

	// Not in cache, get from database
	user, err := s.repo.FindUserOneWhere(nil, &username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseError
	}

	_ = s.cacheUser(ctx, user)

	return user, nil
}

// CreateUser creates a new user with default storage tracking
func (s *Service) CreateUser(ctx context.Context, email, username, passwordHash, role string) (*models.User, error) {
	if email == "" || username == "" || passwordHash == "" {
		return nil, ErrInvalidInput
	}

	// Check for existing email or username
	existing, err := s.repo.FindUserOneWhere(&email, &username)
	if err == nil && existing != nil {
		if existing.Email == email {
			return nil, ErrEmailAlreadyExists
		}
		return nil, ErrUsernameAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDatabaseError
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		DisplayName:  username,
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
	}

	user, err = s.repo.SaveUser(user)
	if err != nil {
		s.logger.Error("Failed to save user", "error", err)
		return nil, ErrDatabaseError
	}

	// Create the user's storage tracking row
	storage := &models.UserStorage{
		UserID:   user.ID,
		MaxSpace: DefaultMaxSpace,
	}
	if err := s.repo.CreateUserStorage(storage); err != nil {
		s.logger.Error("Failed to create user storage", "userID", user.ID, "error", err)
		return nil, ErrDatabaseError
	}

	// Cache the new user
	_ = s.cacheUser(ctx, user)

	return user, nil
}

// UpdateUser applies updates to a user and refreshes the cache
func (s *Service) UpdateUser(ctx context.Context, userID string, updates map[string]interface{}) (*models.User, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseError
	}

	// Old identity keys must be dropped before the update changes them
	s.invalidateUserCache(ctx, user)

	validator := NewUserValidator()

	// Apply allowed updates
	for field, value := range updates {
		switch field {
		case "displayName":
			if name, ok := value.(string); ok {
				user.DisplayName = name
			}
		case "username":
			if username, ok := value.(string); ok {
				if !validator.ValidateUsername(username) {
					return nil, ErrInvalidUsername
				}
				user.Username = username
			}
		case "email":
			if email, ok := value.(string); ok {
				if !validator.ValidateEmail(email) {
					return nil, ErrInvalidEmail
				}
				user.Email = email
				user.EmailVerified = false
			}
		}
	}

	user, err = s.repo.UpdateUserById(userID, user)
	if err != nil {
		s.logger.Error("Failed to update user", "userID", userID, "error", err)
		return nil, ErrDatabaseError
	}

	_ = s.cacheUser(ctx, user)

	return user, nil
}

// UpdatePasswordHash replaces a user's stored password hash
func (s *Service) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	if userID == "" || passwordHash == "" {
		return ErrInvalidInput
	}

	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return ErrDatabaseError
	}

	user.PasswordHash = passwordHash
	if _, err := s.repo.UpdateUserById(userID, user); err != nil {
		s.logger.Error("Failed to update password hash", "userID", userID, "error", err)
		return ErrDatabaseError
	}

	_ = s.cacheUser(ctx, user)

	return nil
}

// UpdateLastLogin records a successful login for a user
func (s *Service) UpdateLastLogin(ctx context.Context, userID string) error {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	user.LastLogin = time.Now().Unix()
	if _, err := s.repo.UpdateUserById(userID, user); err != nil {
		return ErrDatabaseError
	}

	_ = s.cacheUser(ctx, user)

	return nil
}

// DeleteUser removes a user and drops it from the cache
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrInvalidInput
	}

	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return ErrDatabaseError
	}

	s.invalidateUserCache(ctx, user)

	// Sweep every remaining key in the user's cache namespace
	if _, err := s.cache.DeleteByPattern(ctx, redisPatternForUserNamespace(userID)); err != nil {
		s.logger.Warn("Failed to sweep user cache namespace", "userID", userID, "error", err)
	}

	if err := s.repo.DeleteUser(userID); err != nil {
		s.logger.Error("Failed to delete user", "userID", userID, "error", err)
		return ErrDatabaseError
	}

	return nil
}

// CountUsers returns the number of registered users
func (s *Service) CountUsers(ctx context.Context) (int64, error) {
	count, err := s.repo.CountUsers()
	if err != nil {
		return 0, ErrDatabaseError
	}
	return count, nil
}

// EmailExists reports whether a user exists with the given email
func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetUserByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	return false, err
}

// UsernameExists reports whether a user exists with the given username
func (s *Service) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := s.GetUserByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	return false, err
}
