package files

import (
	"errors"
)

var (
	// ErrInvalidInput indicates the provided input is invalid
	ErrInvalidInput = errors.New("Invalid input provided")

	// ErrInvalidName indicates the file or folder name is invalid
	ErrInvalidName = errors.New("Invalid file name")

	// ErrInvalidMimeType indicates the declared MIME type is malformed
	ErrInvalidMimeType = errors.New("Invalid MIME type")

	// ErrFileNotFound indicates the file was not found
	ErrFileNotFound = errors.New("File not found")

	// ErrFolderNotFound indicates the parent folder was not found
	ErrFolderNotFound = errors.New("Folder not found")

	// ErrFolderNotEmpty indicates a folder still has children
	ErrFolderNotEmpty = errors.New("Folder is not empty")

	// ErrNotAFolder indicates the target is not a folder
	ErrNotAFolder = errors.New("Target is not a folder")

	// ErrNameTaken indicates a sibling with the same name exists
	ErrNameTaken = errors.New("Name already in use")

	// ErrUploadNotPending indicates the upload is not in a pending state
	ErrUploadNotPending = errors.New("Upload is not pending")

	// ErrUnauthorized indicates the file belongs to another user
	ErrUnauthorized = errors.New("Not authorized to access this file")

	// ErrObjectStoreError indicates an object storage operation failed
	ErrObjectStoreError = errors.New("Object storage operation failed")

	// ErrDatabaseError indicates an error occurred with the database
	ErrDatabaseError = errors.New("Database operation failed")
)
