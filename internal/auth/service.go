package auth

import (
	"context"
	"errors"
	"time"

	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/models"
	"cloudvault-api/internal/user"
	"cloudvault-api/pkg/redis"

	"golang.org/x/crypto/bcrypt"
)

const (
	// Redis key for the cached first-run setup flag
	setupStatusKey = "setup:needed"
	setupStatusTTL = 5 * time.Minute

	// Distributed lock serializing owner creation across instances
	setupLockName = "setup:complete"
	setupLockTTL  = 10 * time.Second
)

// NewService creates a new auth service
func NewService(userService UserService, cache redis.Cache, logger *logger.Logger) *Service {
	return &Service{
		userService: userService,
		cache:       cache,
		logger:      logger,
	}
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GetSetupStatus reports whether first-run setup is still required.
// The flag is cached so the unauthenticated status endpoint stays cheap.
func (s *Service) GetSetupStatus(ctx context.Context) (*SetupStatus, error) {
	value, err := s.cache.GetWithFallback(ctx, setupStatusKey, func(ctx context.Context) (any, error) {
		count, err := s.userService.CountUsers(ctx)
		if err != nil {
			return nil, err
		}
		return count == 0, nil
	}, setupStatusTTL)
	if err != nil {
		return nil, err
	}

	needsSetup, ok := value.(bool)
	if !ok {
		// Unexpected cached value, answer from the database
		count, err := s.userService.CountUsers(ctx)
		if err != nil {
			return nil, err
		}
		needsSetup = count == 0
	}

	return &SetupStatus{NeedsSetup: needsSetup}, nil
}

// CompleteSetup creates the owner account during first-run setup.
// A distributed lock serializes the count-then-create sequence so two
// concurrent setups cannot both create an owner.
func (s *Service) CompleteSetup(ctx context.Context, email, username, password string) (*models.User, error) {
	locked, err := s.cache.AcquireLock(ctx, setupLockName, setupLockTTL, 3, 100*time.Millisecond)
	if err != nil || !locked {
		// Another setup holds the lock, let it win
		return nil, ErrSetupAlreadyDone
	}
	defer func() {
		if _, err := s.cache.ReleaseLock(ctx, setupLockName); err != nil {
			s.logger.Warn("Failed to release setup lock", "error", err)
		}
	}()

	count, err := s.userService.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSetupAlreadyDone
	}

	validator := user.NewUserValidator()
	if err := validator.ValidateCreate(email, username, password); err != nil {
		return nil, mapValidationError(err)
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password", "error", err)
		return nil, ErrInvalidInput
	}

	// The first account owns the instance
	created, err := s.userService.CreateUser(ctx, email, username, passwordHash, models.RoleOwner)
	if err != nil {
		return nil, mapUserError(err)
	}

	// Setup is done, flip the cached flag
	if err := s.cache.SetJSON(ctx, setupStatusKey, false, setupStatusTTL); err != nil {
		s.logger.Warn("Failed to update cached setup status", "error", err)
	}

	return created, nil
}

// Signup registers a regular user account
func (s *Service) Signup(ctx context.Context, email, username, password string) (*models.User, error) {
	status, err := s.GetSetupStatus(ctx)
	if err != nil {
		return nil, err
	}
	if status.NeedsSetup {
		return nil, ErrSetupRequired
	}

	validator := user.NewUserValidator()
	if err := validator.ValidateCreate(email, username, password); err != nil {
		return nil, mapValidationError(err)
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password", "error", err)
		return nil, ErrInvalidInput
	}

	created, err := s.userService.CreateUser(ctx, email, username, passwordHash, models.RoleUser)
	if err != nil {
		return nil, mapUserError(err)
	}

	return created, nil
}

// Login verifies a user's credentials and returns the account
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	account, err := s.userService.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Burn a bcrypt comparison so missing accounts take as long as bad passwords
			_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$000000000000000000000uGyUlB0Jc1iR9PAGuJqyrhZ8BGJLpUpa"), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !account.Active || account.Deleted {
		return nil, ErrAccountDeactivated
	}

	if err := s.userService.UpdateLastLogin(ctx, account.ID); err != nil {
		s.logger.Warn("Failed to update last login", "userID", account.ID, "error", err)
		// Login still succeeds
	}

	return account, nil
}

// ChangePassword replaces a user's password after verifying the old one
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if userID == "" || oldPassword == "" || newPassword == "" {
		return ErrInvalidInput
	}

	account, err := s.userService.GetUserById(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	validator := user.NewUserValidator()
	if !validator.ValidatePassword(newPassword) {
		return ErrInvalidPassword
	}

	passwordHash, err := HashPassword(newPassword)
	if err != nil {
		return ErrInvalidInput
	}

	return s.userService.UpdatePasswordHash(ctx, userID, passwordHash)
}

// mapValidationError converts user validator errors to auth sentinels
func mapValidationError(err error) error {
	switch {
	case errors.Is(err, user.ErrInvalidEmail):
		return ErrInvalidEmail
	case errors.Is(err, user.ErrInvalidUsername):
		return ErrInvalidUsername
	case errors.Is(err, user.ErrInvalidPassword):
		return ErrInvalidPassword
	default:
		return ErrInvalidInput
	}
}

// mapUserError converts user service errors to auth sentinels
func mapUserError(err error) error {
	switch {
	case errors.Is(err, user.ErrEmailAlreadyExists):
		return ErrEmailAlreadyExists
	case errors.Is(err, user.ErrUsernameAlreadyExists):
		return ErrUsernameAlreadyExists
	default:
		return err
	}
}
