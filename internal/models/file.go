package models

import (
	"time"

	"gorm.io/gorm"

	"cloudvault-api/internal/utils"
)

// Upload states for FileItem
const (
	UploadStatePending = "pending"
	UploadStateActive  = "active"
	UploadStateDeleted = "deleted"
)

// FileItem represents a stored file or folder belonging to a user
type FileItem struct {
	ID          string  `gorm:"primaryKey;column:id"`
	UserID      string  `gorm:"column:user_id;not null;index:idx_file_items_user_parent,priority:1"`
	ParentID    *string `gorm:"column:parent_id;index:idx_file_items_user_parent,priority:2;default:null"`
	Name        string  `gorm:"column:name;size:255;not null"`
	IsFolder    bool    `gorm:"column:is_folder;default:false;not null"`
	MimeType    string  `gorm:"column:mime_type;size:100"`
	Size        int64   `gorm:"column:size;default:0"`
	UploadState string  `gorm:"column:upload_state;size:20;default:'pending';not null"`
	StorageKey  string  `gorm:"column:storage_key;size:255"`
	CreatedAt   int64   `gorm:"column:created_at;autoCreateTime:false;not null"`
	ModifiedAt  int64   `gorm:"column:modified_at;autoCreateTime:false;not null"`

	// Relationships
	User     User       `gorm:"foreignKey:UserID"`
	Children []FileItem `gorm:"foreignKey:ParentID"`
}

// TableName specifies the table name for FileItem
func (FileItem) TableName() string {
	return "file_items"
}

// BeforeCreate hook for FileItem
func (fi *FileItem) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().Unix()
	if fi.ID == "" {
		fi.ID = utils.GenerateFileID()
	}
	if fi.UploadState == "" {
		fi.UploadState = UploadStatePending
	}
	if fi.CreatedAt == 0 {
		fi.CreatedAt = now
	}
	if fi.ModifiedAt == 0 {
		fi.ModifiedAt = now
	}
	return nil
}

// BeforeUpdate hook for FileItem
func (fi *FileItem) BeforeUpdate(tx *gorm.DB) error {
	fi.ModifiedAt = time.Now().Unix()
	return nil
}
