package files

import (
	"context"
	"errors"

	"cloudvault-api/internal/models"
	"cloudvault-api/pkg/db"

	"gorm.io/gorm"
)

// NewRepository creates a new file repository
func NewRepository(database *gorm.DB) Repository {
	return &repo{
		fileRepo: db.NewRepositoryWithDB[models.FileItem](database),
	}
}

// SaveFile creates a file item
func (r *repo) SaveFile(item *models.FileItem) error {
	return r.fileRepo.Create(context.Background(), item)
}

// GetFile retrieves a file item by ID
func (r *repo) GetFile(fileID string) (*models.FileItem, error) {
	item, err := r.fileRepo.FindByID(context.Background(), fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return item, nil
}

// GetUserFile retrieves a file item scoped to its owner
func (r *repo) GetUserFile(userID, fileID string) (*models.FileItem, error) {
	item, err := r.fileRepo.FindOneWhere(context.Background(), "id = ? AND user_id = ?", fileID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return item, nil
}

// ListChildren lists the items directly under a folder.
// A nil parentID lists the user's root.
func (r *repo) ListChildren(userID string, parentID *string) ([]*models.FileItem, error) {
	var items []*models.FileItem

	query := r.fileRepo.DB().
		Where("user_id = ?", userID).
		Where("upload_state <> ?", models.UploadStateDeleted)

	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	err := query.Order("is_folder DESC, name ASC").Find(&items).Error
	return items, err
}

// CountChildren counts the non-deleted items under a folder
func (r *repo) CountChildren(userID, folderID string) (int64, error) {
	var count int64
	err := r.fileRepo.DB().
		Model(&models.FileItem{}).
		Where("user_id = ? AND parent_id = ?", userID, folderID).
		Where("upload_state <> ?", models.UploadStateDeleted).
		Count(&count).Error
	return count, err
}

// UpdateFile updates a file item with locking
func (r *repo) UpdateFile(item *models.FileItem) error {
	return r.fileRepo.Update(context.Background(), item)
}

// DeleteFile removes a file item row
func (r *repo) DeleteFile(fileID string) error {
	return r.fileRepo.Delete(context.Background(), fileID)
}
