package sessions

import (
	"time"

	"cloudvault-api/internal/models"
	"cloudvault-api/pkg/status"
)

// BaseResponse provides the base structure for all API responses
type BaseResponse struct {
	Code int16 `json:"code"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	BaseResponse
	Detail string `json:"detail"`
}

// SuccessResponse represents a simple success message
type SuccessResponse struct {
	BaseResponse
	Detail string `json:"detail"`
}

// SessionData represents session data in the response
type SessionData struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	DeviceName string `json:"deviceName"`
	IPAddress  string `json:"ipAddress"`
	UserAgent  string `json:"userAgent"`
	ExpiresAt  int64  `json:"expiresAt"`
	CreatedAt  int64  `json:"createdAt"`
	LastActive int64  `json:"lastActive"`
	IsActive   bool   `json:"isActive"`
	IsCurrent  bool   `json:"isCurrent"`
}

// SessionResponse represents a session response
type SessionResponse struct {
	BaseResponse
	Session SessionData `json:"session"`
}

// SessionsListResponse represents a list of sessions response
type SessionsListResponse struct {
	BaseResponse
	Sessions []SessionData `json:"sessions"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(message string, code int16) ErrorResponse {
	return ErrorResponse{
		BaseResponse: BaseResponse{Code: code},
		Detail:       message,
	}
}

// NewSuccessResponse creates a success response worded from the status code
func NewSuccessResponse(code int16) SuccessResponse {
	return SuccessResponse{
		BaseResponse: BaseResponse{Code: code},
		Detail:       status.CodeToString(code),
	}
}

// NewSessionResponse creates a new session response
func NewSessionResponse(session *models.UserSession, currentSessionID string, code int16) SessionResponse {
	return SessionResponse{
		BaseResponse: BaseResponse{Code: code},
		Session:      convertModelSessionToResponse(session, currentSessionID),
	}
}

// NewSessionsListResponse creates a new sessions list response
func NewSessionsListResponse(sessions []*models.UserSession, currentSessionID string, code int16) SessionsListResponse {
	sessionDataList := make([]SessionData, len(sessions))
	for i, s := range sessions {
		sessionDataList[i] = convertModelSessionToResponse(s, currentSessionID)
	}
	return SessionsListResponse{
		BaseResponse: BaseResponse{Code: code},
		Sessions:     sessionDataList,
	}
}

// Helper function to convert model session to response session data
func convertModelSessionToResponse(session *models.UserSession, currentSessionID string) SessionData {
	return SessionData{
		ID:         session.ID,
		UserID:     session.UserID,
		DeviceName: session.DeviceName,
		IPAddress:  session.IPAddress,
		UserAgent:  session.UserAgent,
		ExpiresAt:  session.ExpiresAt,
		CreatedAt:  session.CreatedAt,
		LastActive: session.LastActive,
		IsActive:   session.IsValid && session.ExpiresAt > time.Now().Unix(),
		IsCurrent:  session.ID == currentSessionID,
	}
}
