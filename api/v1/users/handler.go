package users

import (
	"net/http"

	"cloudvault-api/internal/storage"
	"cloudvault-api/internal/user"
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

// GetMe returns the authenticated user's profile
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := h.getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	currentUser, err := h.userService.GetUserById(c.Request.Context(), userID)
	if err != nil {
		h.secureLog(err, "Failed to load user", "/users/me")

		statusCode := http.StatusInternalServerError
		apiStatus := status.StatusInternalServerError

		if err == user.ErrUserNotFound {
			statusCode = http.StatusNotFound
			apiStatus = status.StatusNotFound
		}

		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(currentUser, status.StatusOK))
}

// UpdateMe updates mutable profile fields on the authenticated user
func (h *Handler) UpdateMe(c *gin.Context) {
	userID, ok := h.getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid profile update request", "/users/me")
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse("Invalid request format", status.StatusValidationFailed))
		return
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["displayName"] = *req.DisplayName
	}
	if req.Username != nil {
		updates["username"] = *req.Username
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse("No fields to update", status.StatusBadRequest))
		return
	}

	updatedUser, err := h.userService.UpdateUser(c.Request.Context(), userID, updates)
	if err != nil {
		h.secureLog(err, "Failed to update user", "/users/me")

		statusCode := http.StatusInternalServerError
		apiStatus := status.StatusInternalServerError

		switch err {
		case user.ErrUserNotFound:
			statusCode = http.StatusNotFound
			apiStatus = status.StatusNotFound
		case user.ErrInvalidUsername:
			statusCode = http.StatusUnprocessableEntity
			apiStatus = status.StatusValidationFailed
		case user.ErrUsernameAlreadyExists:
			statusCode = http.StatusConflict
			apiStatus = status.StatusConflict
		}

		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(updatedUser, status.StatusUpdated))
}

// GetMyStorage returns the authenticated user's storage quota
func (h *Handler) GetMyStorage(c *gin.Context) {
	userID, ok := h.getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	quota, err := h.storageService.GetQuota(c.Request.Context(), userID)
	if err != nil {
		h.secureLog(err, "Failed to load storage quota", "/users/me/storage")

		statusCode := http.StatusInternalServerError
		apiStatus := status.StatusInternalServerError

		if err == storage.ErrStorageNotFound {
			statusCode = http.StatusNotFound
			apiStatus = status.StatusNotFound
		}

		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusOK, NewStorageResponse(quota, status.StatusOK))
}

// DeleteUser removes another user's account. Admin only.
func (h *Handler) DeleteUser(c *gin.Context) {
	callerID, ok := h.getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	targetUserID := c.Param("id")
	if targetUserID == "" {
		c.JSON(http.StatusBadRequest, NewErrorResponse("User ID required", status.StatusBadRequest))
		return
	}
	if targetUserID == callerID {
		c.JSON(http.StatusBadRequest, NewErrorResponse("Cannot delete your own account", status.StatusBadRequest))
		return
	}

	// Revoke the account's sessions before the row goes away
	if err := h.sessionService.InvalidateAllUserSessions(c.Request.Context(), targetUserID); err != nil {
		h.secureLog(err, "Failed to revoke sessions for deleted user", "/users/:id")
	}

	if err := h.userService.DeleteUser(c.Request.Context(), targetUserID); err != nil {
		h.secureLog(err, "Failed to delete user", "/users/:id")

		statusCode := http.StatusInternalServerError
		apiStatus := status.StatusInternalServerError

		if err == user.ErrUserNotFound {
			statusCode = http.StatusNotFound
			apiStatus = status.StatusNotFound
		}

		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(status.StatusDeleted))
}

// SetUserMaxSpace changes another user's storage allowance. Admin only.
func (h *Handler) SetUserMaxSpace(c *gin.Context) {
	targetUserID := c.Param("id")
	if targetUserID == "" {
		c.JSON(http.StatusBadRequest, NewErrorResponse("User ID required", status.StatusBadRequest))
		return
	}

	var req SetMaxSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid quota update request", "/users/:id/storage")
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse("Invalid request format", status.StatusValidationFailed))
		return
	}

	updated, err := h.storageService.SetMaxSpace(c.Request.Context(), targetUserID, req.MaxSpace)
	if err != nil {
		h.secureLog(err, "Failed to update storage allowance", "/users/:id/storage")

		statusCode := http.StatusInternalServerError
		apiStatus := status.StatusInternalServerError

		switch err {
		case storage.ErrStorageNotFound:
			statusCode = http.StatusNotFound
			apiStatus = status.StatusNotFound
		case storage.ErrInvalidInput:
			statusCode = http.StatusBadRequest
			apiStatus = status.StatusBadRequest
		}

		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusOK, newStorageResponse(updated.UsedSpace, updated.MaxSpace, status.StatusUpdated))
}
