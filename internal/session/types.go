package session

import (
	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/models"
	"cloudvault-api/pkg/db"
	"cloudvault-api/pkg/redis"
)

// Service defines the session service interface
type Service struct {
	repo   Repository
	cache  redis.Cache
	logger *logger.Logger
}

// Repository defines the session repository interface
type Repository interface {
	// Session operations
	SaveSession(session *models.UserSession) error
	GetSession(sessionID string) (*models.UserSession, error)
	GetAllSessionsByUserID(userID string) ([]*models.UserSession, error)
	UpdateSession(session *models.UserSession) error
	DeleteSession(sessionID string) error
}

// DeviceInfo represents client information captured at session creation
type DeviceInfo struct {
	DeviceName string
	UserAgent  string
}

// repo is the concrete implementation of Repository
type repo struct {
	sessionRepo db.Repository[models.UserSession]
}

// SessionValidator is the interface for session validation
type SessionValidator interface {
	ValidateSessionCreate(user *models.User) error
	ValidateSession(session *models.UserSession) error
}

// sessionValidator is the concrete implementation of SessionValidator
type sessionValidator struct{}
