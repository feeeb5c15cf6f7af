package users

import (
	"cloudvault-api/internal/models"
	"cloudvault-api/internal/storage"
	"cloudvault-api/pkg/status"
)

// UserData represents a user in the response
type UserData struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	DisplayName   string `json:"displayName"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
	CreatedAt     int64  `json:"createdAt"`
	ModifiedAt    int64  `json:"modifiedAt"`
	LastLogin     int64  `json:"lastLogin"`
}

// UserResponse represents a single user response
type UserResponse struct {
	Code int16    `json:"code"`
	User UserData `json:"user"`
}

// StorageResponse represents the user's storage quota
type StorageResponse struct {
	Code           int16   `json:"code"`
	UsedSpace      int64   `json:"usedSpace"`
	MaxSpace       int64   `json:"maxSpace"`
	AvailableSpace int64   `json:"availableSpace"`
	UsagePercent   float64 `json:"usagePercent"`
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

// NewSuccessResponse creates a success response worded from the status code
func NewSuccessResponse(code int16) SuccessResponse {
	return SuccessResponse{
		Code:   code,
		Detail: status.CodeToString(code),
	}
}

// NewUserResponse creates a new user response
func NewUserResponse(user *models.User, code int16) UserResponse {
	return UserResponse{
		Code: code,
		User: UserData{
			ID:            user.ID,
			Email:         user.Email,
			Username:      user.Username,
			DisplayName:   user.DisplayName,
			Role:          user.Role,
			EmailVerified: user.EmailVerified,
			CreatedAt:     user.CreatedAt,
			ModifiedAt:    user.ModifiedAt,
			LastLogin:     user.LastLogin,
		},
	}
}

// NewStorageResponse creates a new storage quota response
func NewStorageResponse(quota *storage.Quota, code int16) StorageResponse {
	return newStorageResponse(quota.UsedSpace, quota.MaxSpace, code)
}

func newStorageResponse(usedSpace, maxSpace int64, code int16) StorageResponse {
	available := maxSpace - usedSpace
	if available < 0 {
		available = 0
	}
	var percent float64
	if maxSpace > 0 {
		percent = float64(usedSpace) / float64(maxSpace) * 100
	}
	return StorageResponse{
		Code:           code,
		UsedSpace:      usedSpace,
		MaxSpace:       maxSpace,
		AvailableSpace: available,
		UsagePercent:   percent,
	}
}

// NewErrorResponse creates a new error response
func NewErrorResponse(message string, code int16) ErrorResponse {
	return ErrorResponse{
		Code:   code,
		Detail: message,
	}
}
