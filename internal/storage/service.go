package storage

import (
	"context"
	"fmt"
	"time"

	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/models"
	"cloudvault-api/pkg/redis"
)

// NewService creates a new storage service
func NewService(repo Repository, cache redis.Cache, logger *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func redisKeyForStorage(userID string) string {
	return fmt.Sprintf("user:%s:storage", userID)
}

// GetUserStorage retrieves a user's storage state with cache lookup
func (s *Service) GetUserStorage(ctx context.Context, userID string) (*models.UserStorage, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	// Try cache first
	var cached models.UserStorage
	if err := s.cache.GetJSON(ctx, redisKeyForStorage(userID), &cached); err == nil && cached.ID != "" {
		return &cached, nil
	}

	storage, err := s.repo.GetStorageByUserID(userID)
	if err != nil {
		return nil, err
	}

	s.cacheStorage(ctx, storage)

	return storage, nil
}

// GetQuota returns the API-facing quota view for a user
func (s *Service) GetQuota(ctx context.Context, userID string) (*Quota, error) {
	storage, err := s.GetUserStorage(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Quota{
		UsedSpace: storage.UsedSpace,
		MaxSpace:  storage.MaxSpace,
	}, nil
}

// CheckQuota verifies that size more bytes fit within the user's quota
func (s *Service) CheckQuota(ctx context.Context, userID string, size int64) error {
	if size < 0 {
		return ErrInvalidInput
	}

	storage, err := s.GetUserStorage(ctx, userID)
	if err != nil {
		return err
	}

	if storage.UsedSpace+size > storage.MaxSpace {
		return ErrQuotaExceeded
	}

	return nil
}

// AddUsedSpace records size bytes of new usage for a user.
// The quota is re-checked under the row lock so racing uploads cannot
// both slip under the limit.
func (s *Service) AddUsedSpace(ctx context.Context, userID string, size int64) (*models.UserStorage, error) {
	if size < 0 {
		return nil, ErrInvalidInput
	}

	storage, err := s.repo.AdjustUsedSpace(userID, size)
	if err != nil {
		return nil, err
	}

	if storage.UsedSpace > storage.MaxSpace {
		// Roll the usage back and reject
		if _, rbErr := s.repo.AdjustUsedSpace(userID, -size); rbErr != nil {
			s.logger.Error("Failed to roll back quota overshoot", "userID", userID, "error", rbErr)
		}
		return nil, ErrQuotaExceeded
	}

	s.cacheStorage(ctx, storage)

	return storage, nil
}

// ReleaseUsedSpace returns size bytes to the user's quota
func (s *Service) ReleaseUsedSpace(ctx context.Context, userID string, size int64) (*models.UserStorage, error) {
	if size < 0 {
		return nil, ErrInvalidInput
	}

	storage, err := s.repo.AdjustUsedSpace(userID, -size)
	if err != nil {
		return nil, err
	}

	s.cacheStorage(ctx, storage)

	return storage, nil
}

// SetMaxSpace updates a user's storage limit
func (s *Service) SetMaxSpace(ctx context.Context, userID string, maxSpace int64) (*models.UserStorage, error) {
	if maxSpace < 0 {
		return nil, ErrInvalidInput
	}

	storage, err := s.repo.GetStorageByUserID(userID)
	if err != nil {
		return nil, err
	}

	storage.MaxSpace = maxSpace
	if err := s.repo.UpdateStorage(storage); err != nil {
		return nil, ErrDatabaseError
	}

	s.cacheStorage(ctx, storage)

	return storage, nil
}

// cacheStorage writes the storage row to Redis, logging failures
func (s *Service) cacheStorage(ctx context.Context, storage *models.UserStorage) {
	if err := s.cache.SetJSON(ctx, redisKeyForStorage(storage.UserID), storage, 10*time.Minute); err != nil {
		s.logger.Warn("Failed to cache user storage", "userID", storage.UserID, "error", err)
	}
}
