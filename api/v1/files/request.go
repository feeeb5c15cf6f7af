package files

// CreateFolderRequest represents the request to create a folder
type CreateFolderRequest struct {
	ParentID *string `json:"parentId,omitempty"`
	Name     string  `json:"name" binding:"required"`
}

// InitiateUploadRequest represents the request to start a file upload
type InitiateUploadRequest struct {
	ParentID *string `json:"parentId,omitempty"`
	Name     string  `json:"name" binding:"required"`
	MimeType string  `json:"mimeType" binding:"required"`
	Size     int64   `json:"size" binding:"gte=0"`
}

// RenameRequest represents the request to rename a file or folder
type RenameRequest struct {
	Name string `json:"name" binding:"required"`
}

// MoveRequest represents the request to move a file or folder.
// A nil parentId moves the item to the root.
type MoveRequest struct {
	ParentID *string `json:"parentId,omitempty"`
}
