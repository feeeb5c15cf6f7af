package auth

import (
	"cloudvault-api/internal/auth"
	"cloudvault-api/internal/jwt"
	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/session"
	"cloudvault-api/internal/user"
)

// Handler manages auth-related HTTP requests
type Handler struct {
	authService    *auth.Service
	userService    *user.Service
	jwtService     *jwt.JWTService
	sessionService *session.Service
	logger         *logger.Logger
}

// NewHandler creates a new auth handler
func NewHandler(
	authService *auth.Service,
	userService *user.Service,
	jwtService *jwt.JWTService,
	sessionService *session.Service,
	log *logger.Logger,
) *Handler {
	return &Handler{
		authService:    authService,
		userService:    userService,
		jwtService:     jwtService,
		sessionService: sessionService,
		logger:         log,
	}
}
