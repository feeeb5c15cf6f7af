package storage

import (
	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/models"
	"cloudvault-api/pkg/db"
	"cloudvault-api/pkg/redis"
)

// Service manages per-user storage quotas
type Service struct {
	repo   Repository
	cache  redis.Cache
	logger *logger.Logger
}

// Repository defines the storage repository interface
type Repository interface {
	CreateStorage(storage *models.UserStorage) error
	GetStorageByUserID(userID string) (*models.UserStorage, error)
	UpdateStorage(storage *models.UserStorage) error

	// AdjustUsedSpace atomically applies a delta to used space under a row lock
	AdjustUsedSpace(userID string, delta int64) (*models.UserStorage, error)
}

// Quota is the API-facing view of a user's storage state
type Quota struct {
	UsedSpace int64 `json:"usedSpace"`
	MaxSpace  int64 `json:"maxSpace"`
}

// repo is the concrete implementation of Repository
type repo struct {
	storageRepo *db.BaseRepository[models.UserStorage]
}
