package files

import (
	"cloudvault-api/internal/files"
	"cloudvault-api/internal/models"
	"cloudvault-api/pkg/status"
)

// FileData represents a file or folder in the response
type FileData struct {
	ID          string  `json:"id"`
	ParentID    *string `json:"parentId"`
	Name        string  `json:"name"`
	IsFolder    bool    `json:"isFolder"`
	MimeType    string  `json:"mimeType,omitempty"`
	Size        int64   `json:"size"`
	UploadState string  `json:"uploadState"`
	PreviewKind string  `json:"previewKind,omitempty"`
	CreatedAt   int64   `json:"createdAt"`
	ModifiedAt  int64   `json:"modifiedAt"`
}

// FileResponse represents a single file response
type FileResponse struct {
	Code int16    `json:"code"`
	File FileData `json:"file"`
}

// FileListResponse represents a folder listing
type FileListResponse struct {
	Code  int16      `json:"code"`
	Files []FileData `json:"files"`
}

// UploadTicketResponse represents the response to an initiated upload
type UploadTicketResponse struct {
	Code      int16    `json:"code"`
	File      FileData `json:"file"`
	UploadURL string   `json:"uploadUrl"`
}

// PreviewResponse carries a preview descriptor for a file
type PreviewResponse struct {
	Code int16  `json:"code"`
	Kind string `json:"kind"`
	URL  string `json:"url,omitempty"`
}

// DownloadURLResponse carries a presigned download URL
type DownloadURLResponse struct {
	Code        int16  `json:"code"`
	DownloadURL string `json:"downloadUrl"`
}

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Code   int16  `json:"code"`
	Detail string `json:"detail"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Code   int16  `json:"code"`
	Detail string `json:"detail"`
}

// newFileData converts a file item model into its response shape
func newFileData(item *models.FileItem) FileData {
	data := FileData{
		ID:          item.ID,
		ParentID:    item.ParentID,
		Name:        item.Name,
		IsFolder:    item.IsFolder,
		MimeType:    item.MimeType,
		Size:        item.Size,
		UploadState: item.UploadState,
		CreatedAt:   item.CreatedAt,
		ModifiedAt:  item.ModifiedAt,
	}
	if !item.IsFolder {
		data.PreviewKind = files.PreviewKind(item.MimeType)
	}
	return data
}

// NewFileResponse creates a new single file response
func NewFileResponse(item *models.FileItem, code int16) FileResponse {
	return FileResponse{
		Code: code,
		File: newFileData(item),
	}
}

// NewFileListResponse creates a new folder listing response
func NewFileListResponse(items []*models.FileItem, code int16) FileListResponse {
	fileDataList := make([]FileData, len(items))
	for i, item := range items {
		fileDataList[i] = newFileData(item)
	}
	return FileListResponse{
		Code:  code,
		Files: fileDataList,
	}
}

// NewUploadTicketResponse creates a new upload ticket response
func NewUploadTicketResponse(ticket *files.UploadTicket, code int16) UploadTicketResponse {
	return UploadTicketResponse{
		Code:      code,
		File:      newFileData(ticket.File),
		UploadURL: ticket.UploadURL,
	}
}

// NewPreviewResponse creates a new preview response
func NewPreviewResponse(preview *files.Preview, code int16) PreviewResponse {
	return PreviewResponse{
		Code: code,
		Kind: preview.Kind,
		URL:  preview.URL,
	}
}

// NewDownloadURLResponse creates a new download URL response
func NewDownloadURLResponse(url string, code int16) DownloadURLResponse {
	return DownloadURLResponse{
		Code:        code,
		DownloadURL: url,
	}
}

// NewSuccessResponse creates a success response worded from the status code
func NewSuccessResponse(code int16) SuccessResponse {
	return SuccessResponse{
		Code:   code,
		Detail: status.CodeToString(code),
	}
}

// NewErrorResponse creates a new error response
func NewErrorResponse(message string, code int16) ErrorResponse {
	return ErrorResponse{
		Code:   code,
		Detail: message,
	}
}
