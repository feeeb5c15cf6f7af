package storage

import (
	"context"
	"errors"

	"cloudvault-api/internal/models"
	"cloudvault-api/pkg/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewRepository creates a new storage repository
func NewRepository(database *gorm.DB) Repository {
	return &repo{
		storageRepo: db.NewRepositoryWithDB[models.UserStorage](database),
	}
}

// CreateStorage creates a storage tracking row
func (r *repo) CreateStorage(storage *models.UserStorage) error {
	return r.storageRepo.Create(context.Background(), storage)
}

// GetStorageByUserID retrieves the storage row for a user
func (r *repo) GetStorageByUserID(userID string) (*models.UserStorage, error) {
	storage, err := r.storageRepo.FindOneWhere(context.Background(), "user_id = ?", userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStorageNotFound
		}
		return nil, err
	}
	return storage, nil
}

// UpdateStorage updates a storage row with locking
func (r *repo) UpdateStorage(storage *models.UserStorage) error {
	return r.storageRepo.Update(context.Background(), storage)
}

// AdjustUsedSpace applies a delta to used space inside a locked transaction.
// Usage never drops below zero even if deletes race with uploads.
func (r *repo) AdjustUsedSpace(userID string, delta int64) (*models.UserStorage, error) {
	var updated *models.UserStorage

	err := db.WithTransaction(context.Background(), func(tx *gorm.DB) error {
		var storage models.UserStorage
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&storage).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStorageNotFound
			}
			return err
		}

		storage.UsedSpace += delta
		if storage.UsedSpace < 0 {
			storage.UsedSpace = 0
		}

		if err := tx.Save(&storage).Error; err != nil {
			return err
		}

		updated = &storage
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
