package files

import (
	"context"

	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/models"
	"cloudvault-api/pkg/db"
)

// Service manages file and folder metadata plus object storage
type Service struct {
	repo   Repository
	quota  QuotaService
	store  ObjectStore
	logger *logger.Logger
}

// Repository defines the file repository interface
type Repository interface {
	SaveFile(item *models.FileItem) error
	GetFile(fileID string) (*models.FileItem, error)
	GetUserFile(userID, fileID string) (*models.FileItem, error)
	ListChildren(userID string, parentID *string) ([]*models.FileItem, error)
	CountChildren(userID, folderID string) (int64, error)
	UpdateFile(item *models.FileItem) error
	DeleteFile(fileID string) error
}

// QuotaService is the subset of the storage service the files service uses
type QuotaService interface {
	CheckQuota(ctx context.Context, userID string, size int64) error
	AddUsedSpace(ctx context.Context, userID string, size int64) (*models.UserStorage, error)
	ReleaseUsedSpace(ctx context.Context, userID string, size int64) (*models.UserStorage, error)
}

// ObjectStore is the subset of the S3 client the files service uses
type ObjectStore interface {
	PrepareFileUpload(userID, fileID, contentType string) (string, error)
	GetFileDownloadURL(userID, fileID string) (string, error)
	DeleteObject(key string) error
}

// UploadTicket is returned when an upload is initiated
type UploadTicket struct {
	File      *models.FileItem `json:"file"`
	UploadURL string           `json:"uploadUrl"`
}

// Preview describes how a client should render a file
type Preview struct {
	Kind string `json:"kind"`
	URL  string `json:"url,omitempty"`
}

// FileValidator is the interface for file input validation
type FileValidator interface {
	ValidateName(name string) error
	ValidateMimeType(mimeType string) error
	ValidateCreate(userID, name string) error
}

// fileValidator is the concrete implementation of FileValidator
type fileValidator struct{}

// repo is the concrete implementation of Repository
type repo struct {
	fileRepo *db.BaseRepository[models.FileItem]
}
