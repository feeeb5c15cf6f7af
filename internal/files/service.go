package files

import (
	"context"
	"strings"

	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/models"
	"cloudvault-api/pkg/s3"
)

// NewService creates a new files service
func NewService(repo Repository, quota QuotaService, store ObjectStore, logger *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		quota:  quota,
		store:  store,
		logger: logger,
	}
}

// resolveParent verifies that parentID names a folder owned by userID.
// A nil parentID refers to the root and always resolves.
func (s *Service) resolveParent(userID string, parentID *string) error {
	if parentID == nil {
		return nil
	}

	parent, err := s.repo.GetUserFile(userID, *parentID)
	if err != nil {
		return ErrFolderNotFound
	}
	if !parent.IsFolder {
		return ErrNotAFolder
	}

	return nil
}

// siblingNameTaken checks for a live sibling with the same name
func (s *Service) siblingNameTaken(userID string, parentID *string, name, excludeID string) (bool, error) {
	siblings, err := s.repo.ListChildren(userID, parentID)
	if err != nil {
		return false, ErrDatabaseError
	}

	for _, sibling := range siblings {
		if sibling.ID != excludeID && strings.EqualFold(sibling.Name, name) {
			return true, nil
		}
	}

	return false, nil
}

// CreateFolder creates a folder under the given parent
func (s *Service) CreateFolder(ctx context.Context, userID string, parentID *string, name string) (*models.FileItem, error) {
	validator := NewFileValidator()
	if err := validator.ValidateCreate(userID, name); err != nil {
		return nil, err
	}

	if err := s.resolveParent(userID, parentID); err != nil {
		return nil, err
	}

	taken, err := s.siblingNameTaken(userID, parentID, name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}

	folder := &models.FileItem{
		UserID:      userID,
		ParentID:    parentID,
		Name:        strings.TrimSpace(name),
		IsFolder:    true,
		UploadState: models.UploadStateActive,
	}

	if err := s.repo.SaveFile(folder); err != nil {
		s.logger.Error("Failed to create folder", "userID", userID, "error", err)
		return nil, ErrDatabaseError
	}

	return folder, nil
}

// InitiateUpload registers a pending file and returns a presigned upload URL.
// The declared size is checked against the quota up front so clients fail
// fast, but the definitive accounting happens at CompleteUpload.
func (s *Service) InitiateUpload(ctx context.Context, userID string, parentID *string, name, mimeType string, size int64) (*UploadTicket, error) {
	validator := NewFileValidator()
	if err := validator.ValidateCreate(userID, name); err != nil {
		return nil, err
	}
	if err := validator.ValidateMimeType(mimeType); err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, ErrInvalidInput
	}

	if err := s.resolveParent(userID, parentID); err != nil {
		return nil, err
	}

	if err := s.quota.CheckQuota(ctx, userID, size); err != nil {
		return nil, err
	}

	taken, err := s.siblingNameTaken(userID, parentID, name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}

	item := &models.FileItem{
		UserID:      userID,
		ParentID:    parentID,
		Name:        strings.TrimSpace(name),
		MimeType:    mimeType,
		Size:        size,
		UploadState: models.UploadStatePending,
	}

	if err := s.repo.SaveFile(item); err != nil {
		s.logger.Error("Failed to register pending upload", "userID", userID, "error", err)
		return nil, ErrDatabaseError
	}

	// Storage key is fixed once the ID exists
	item.StorageKey = s3.FileObjectKey(userID, item.ID)
	if err := s.repo.UpdateFile(item); err != nil {
		return nil, ErrDatabaseError
	}

	uploadURL, err := s.store.PrepareFileUpload(userID, item.ID, mimeType)
	if err != nil {
		s.logger.Error("Failed to presign upload", "fileID", item.ID, "error", err)
		return nil, ErrObjectStoreError
	}

	return &UploadTicket{File: item, UploadURL: uploadURL}, nil
}

// CompleteUpload flips a pending file to active and charges the quota
func (s *Service) CompleteUpload(ctx context.Context, userID, fileID string) (*models.FileItem, error) {
	item, err := s.repo.GetUserFile(userID, fileID)
	if err != nil {
		return nil, err
	}

	if item.UploadState != models.UploadStatePending {
		return nil, ErrUploadNotPending
	}

	if _, err := s.quota.AddUsedSpace(ctx, userID, item.Size); err != nil {
		return nil, err
	}

	item.UploadState = models.UploadStateActive
	if err := s.repo.UpdateFile(item); err != nil {
		// Give the space back if the state flip failed
		if _, rbErr := s.quota.ReleaseUsedSpace(ctx, userID, item.Size); rbErr != nil {
			s.logger.Error("Failed to release space after failed activation", "fileID", fileID, "error", rbErr)
		}
		return nil, ErrDatabaseError
	}

	return item, nil
}

// ListFolder lists the contents of a folder (nil parentID lists the root)
func (s *Service) ListFolder(ctx context.Context, userID string, parentID *string) ([]*models.FileItem, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	if err := s.resolveParent(userID, parentID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListChildren(userID, parentID)
	if err != nil {
		return nil, ErrDatabaseError
	}

	return items, nil
}

// GetFile retrieves a single file item owned by the user
func (s *Service) GetFile(ctx context.Context, userID, fileID string) (*models.FileItem, error) {
	if userID == "" || fileID == "" {
		return nil, ErrInvalidInput
	}

	return s.repo.GetUserFile(userID, fileID)
}

// GetDownloadURL returns a presigned download URL for an active file
func (s *Service) GetDownloadURL(ctx context.Context, userID, fileID string) (string, error) {
	item, err := s.repo.GetUserFile(userID, fileID)
	if err != nil {
		return "", err
	}

	if item.IsFolder {
		return "", ErrInvalidInput
	}
	if item.UploadState != models.UploadStateActive {
		return "", ErrFileNotFound
	}

	url, err := s.store.GetFileDownloadURL(userID, fileID)
	if err != nil {
		s.logger.Error("Failed to presign download", "fileID", fileID, "error", err)
		return "", ErrObjectStoreError
	}

	return url, nil
}

// GetPreview returns the preview descriptor for an active file. The
// presigned URL is only included for kinds a client can render inline.
func (s *Service) GetPreview(ctx context.Context, userID, fileID string) (*Preview, error) {
	item, err := s.repo.GetUserFile(userID, fileID)
	if err != nil {
		return nil, err
	}

	if item.IsFolder {
		return nil, ErrInvalidInput
	}
	if item.UploadState != models.UploadStateActive {
		return nil, ErrFileNotFound
	}

	preview := &Preview{Kind: PreviewKind(item.MimeType)}
	if preview.Kind != PreviewOther {
		url, err := s.store.GetFileDownloadURL(userID, fileID)
		if err != nil {
			s.logger.Error("Failed to presign preview", "fileID", fileID, "error", err)
			return nil, ErrObjectStoreError
		}
		preview.URL = url
	}

	return preview, nil
}

// Rename changes a file or folder name
func (s *Service) Rename(ctx context.Context, userID, fileID, newName string) (*models.FileItem, error) {
	validator := NewFileValidator()
	if err := validator.ValidateName(newName); err != nil {
		return nil, err
	}

	item, err := s.repo.GetUserFile(userID, fileID)
	if err != nil {
		return nil, err
	}

	taken, err := s.siblingNameTaken(userID, item.ParentID, newName, item.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}

	item.Name = strings.TrimSpace(newName)
	if err := s.repo.UpdateFile(item); err != nil {
		return nil, ErrDatabaseError
	}

	return item, nil
}

// Folder chains deeper than this are treated as corrupt
const maxTreeDepth = 128

// wouldCreateCycle reports whether candidateID lies inside the subtree
// rooted at folderID. Walks the ancestor chain from candidateID to the root.
func (s *Service) wouldCreateCycle(userID, folderID, candidateID string) (bool, error) {
	current := candidateID
	for depth := 0; depth < maxTreeDepth; depth++ {
		if current == folderID {
			return true, nil
		}
		node, err := s.repo.GetUserFile(userID, current)
		if err != nil {
			return false, ErrFolderNotFound
		}
		if node.ParentID == nil {
			return false, nil
		}
		current = *node.ParentID
	}
	return true, nil
}

// Move relocates a file or folder under a new parent
func (s *Service) Move(ctx context.Context, userID, fileID string, newParentID *string) (*models.FileItem, error) {
	item, err := s.repo.GetUserFile(userID, fileID)
	if err != nil {
		return nil, err
	}

	if err := s.resolveParent(userID, newParentID); err != nil {
		return nil, err
	}

	// A folder cannot be moved into itself or its own subtree
	if newParentID != nil && item.IsFolder {
		cyclic, err := s.wouldCreateCycle(userID, item.ID, *newParentID)
		if err != nil {
			return nil, err
		}
		if cyclic {
			return nil, ErrInvalidInput
		}
	}

	taken, err := s.siblingNameTaken(userID, newParentID, item.Name, item.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}

	item.ParentID = newParentID
	if err := s.repo.UpdateFile(item); err != nil {
		return nil, ErrDatabaseError
	}

	return item, nil
}

// Delete removes a file or an empty folder.
// Files release their quota and the stored object; folders must be empty.
func (s *Service) Delete(ctx context.Context, userID, fileID string) error {
	item, err := s.repo.GetUserFile(userID, fileID)
	if err != nil {
		return err
	}

	if item.IsFolder {
		count, err := s.repo.CountChildren(userID, fileID)
		if err != nil {
			return ErrDatabaseError
		}
		if count > 0 {
			return ErrFolderNotEmpty
		}

		return s.repo.DeleteFile(fileID)
	}

	wasActive := item.UploadState == models.UploadStateActive

	// Mark deleted first so a failed object delete never resurrects the row
	item.UploadState = models.UploadStateDeleted
	if err := s.repo.UpdateFile(item); err != nil {
		return ErrDatabaseError
	}

	if wasActive {
		if _, err := s.quota.ReleaseUsedSpace(ctx, userID, item.Size); err != nil {
			s.logger.Error("Failed to release quota on delete", "fileID", fileID, "error", err)
		}
	}

	if item.StorageKey != "" {
		if err := s.store.DeleteObject(item.StorageKey); err != nil {
			s.logger.Error("Failed to delete stored object", "fileID", fileID, "error", err)
			// Metadata wins; the object is orphaned, not the row
		}
	}

	return s.repo.DeleteFile(fileID)
}
