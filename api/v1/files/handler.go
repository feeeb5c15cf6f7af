package files

import (
	"net/http"

	"cloudvault-api/internal/files"
	"cloudvault-api/internal/storage"
	"cloudvault-api/pkg/status"

	"github.com/gin-gonic/gin"
)

// getUserIDFromContext extracts and validates user ID from context
func (h *Handler) getUserIDFromContext(c *gin.Context) (string, bool) {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	userID, ok := userIDInterface.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// fileErrorStatus maps file service errors to HTTP and API codes
func fileErrorStatus(err error) (int, int16) {
	switch err {
	case files.ErrFileNotFound:
		return http.StatusNotFound, status.StatusNotFound
	case files.ErrFolderNotFound:
		return http.StatusNotFound, status.StatusNotFound
	case files.ErrNotAFolder:
		return http.StatusBadRequest, status.StatusBadRequest
	case files.ErrInvalidName, files.ErrInvalidMimeType, files.ErrInvalidInput:
		return http.StatusUnprocessableEntity, status.StatusValidationFailed
	case files.ErrNameTaken:
		return http.StatusConflict, status.StatusFileAlreadyExists
	case files.ErrFolderNotEmpty:
		return http.StatusConflict, status.StatusFolderNotEmpty
	case files.ErrUploadNotPending:
		return http.StatusConflict, status.StatusConflict
	case files.ErrUnauthorized:
		return http.StatusForbidden, status.StatusForbidden
	case storage.ErrQuotaExceeded:
		return http.StatusRequestEntityTooLarge, status.StatusStorageQuotaExceeded
	case files.ErrObjectStoreError:
		return http.StatusBadGateway, status.StatusObjectStoreError
	default:
		return http.StatusInternalServerError, status.StatusInternalServerError
	}
}

// parentIDFromQuery reads the optional parentId query parameter.
// An absent or empty parameter refers to the root folder.
func parentIDFromQuery(c *gin.Context) *string {
	parent := c.Query("parentId")
	if parent == "" {
		return nil
	}
	return &parent
}

// HandleCreateFolder creates a new folder
func (h *Handler) HandleCreateFolder(c *gin.Context) {
	userID, ok := h.getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid folder create request", "/files/folders")
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse("Invalid request format", status.StatusValidationFailed))
		return
	}

	folder, err := h.fileService.CreateFolder(c.Request.Context(), userID, req.ParentID, req.Name)
	if err != nil {
		h.secureLog(err, "Failed to create folder", "/files/folders")
		statusCode, apiStatus := fileErrorStatus(err)
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusCreated, NewFileResponse(folder, status.StatusFolderCreated))
}

// HandleInitiateUpload registers a pending upload and returns a presigned URL
func (h *Handler) HandleInitiateUpload(c *gin.Context) {
	userID, ok := h.getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	var req InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid upload request", "/files/uploads")
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse("Invalid request format", status.StatusValidationFailed))
		return
	}

	ticket, err := h.fileService.InitiateUpload(c.Request.Context(), userID, req.ParentID, req.Name, req.MimeType, req.Size)
	if err != nil {
		h.secureLog(err, "Failed to initiate upload", "/files/uploads")
		statusCode, apiStatus := fileErrorStatus(err)
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusCreated, NewUploadTicketResponse(ticket, status.StatusUploadInitiated))
}

// HandleCompleteUpload activates a pending upload
func (h *Handler) HandleCompleteUpload(c *gin.Context) {
	userID, ok := h.getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	fileID := c.Param("id")
	item, err := h.fileService.CompleteUpload(c.Request.Context(), userID, fileID)
	if err != nil {
		h.secureLog(err, "Failed to complete upload", "/files/uploads/complete")
		statusCode, apiStatus := fileErrorStatus(err)
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusOK, NewFileResponse(item, status.StatusFileUploaded))
}

// HandleListFolder lists the contents of a folder
func (h *Handler) HandleListFolder(c *gin.Context) {
	userID, ok := h.getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	items, err := h.fileService.ListFolder(c.Request.Context(), userID, parentIDFromQuery(c))
	if err != nil {
		h.secureLog(err, "Failed to list folder", "/files")
		statusCode, apiStatus := fileErrorStatus(err)
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusOK, NewFileListResponse(items, status.StatusOK))
}

// HandleGetFile returns a single file or folder
func (h *Handler) HandleGetFile(c *gin.Context) {
	userID, ok := h.getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	item, err := h.fileService.GetFile(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		statusCode, apiStatus := fileErrorStatus(err)
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusOK, NewFileResponse(item, status.StatusOK))
}

// HandleGetDownloadURL returns a presigned download URL for a file
func (h *Handler) HandleGetDownloadURL(c *gin.Context) {
	userID, ok := h.getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	url, err := h.fileService.GetDownloadURL(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.secureLog(err, "Failed to presign download", "/files/:id/download")
		statusCode, apiStatus := fileErrorStatus(err)
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusOK, NewDownloadURLResponse(url, status.StatusOK))
}

// HandleGetPreview returns the preview descriptor for a file
func (h *Handler) HandleGetPreview(c *gin.Context) {
	userID, ok := h.getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	preview, err := h.fileService.GetPreview(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.secureLog(err, "Failed to build preview", "/files/:id/preview")
		statusCode, apiStatus := fileErrorStatus(err)
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusOK, NewPreviewResponse(preview, status.StatusOK))
}

// HandleRename renames a file or folder
func (h *Handler) HandleRename(c *gin.Context) {
	userID, ok := h.getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid rename request", "/files/:id/rename")
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse("Invalid request format", status.StatusValidationFailed))
		return
	}

	item, err := h.fileService.Rename(c.Request.Context(), userID, c.Param("id"), req.Name)
	if err != nil {
		h.secureLog(err, "Failed to rename item", "/files/:id/rename")
		statusCode, apiStatus := fileErrorStatus(err)
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusOK, NewFileResponse(item, status.StatusUpdated))
}

// HandleMove moves a file or folder to a new parent
func (h *Handler) HandleMove(c *gin.Context) {
	userID, ok := h.getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid move request", "/files/:id/move")
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse("Invalid request format", status.StatusValidationFailed))
		return
	}

	item, err := h.fileService.Move(c.Request.Context(), userID, c.Param("id"), req.ParentID)
	if err != nil {
		h.secureLog(err, "Failed to move item", "/files/:id/move")
		statusCode, apiStatus := fileErrorStatus(err)
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusOK, NewFileResponse(item, status.StatusUpdated))
}

// HandleDelete deletes a file or an empty folder
func (h *Handler) HandleDelete(c *gin.Context) {
	userID, ok := h.getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.secureLog(err, "Failed to delete item", "/files/:id")
		statusCode, apiStatus := fileErrorStatus(err)
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(status.StatusFileDeleted))
}
