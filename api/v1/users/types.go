package users

import (
	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/session"
	"cloudvault-api/internal/storage"
	"cloudvault-api/internal/user"
	"cloudvault-api/internal/utils"

	"github.com/sirupsen/logrus"
)

// Handler manages user-related HTTP requests
type Handler struct {
	userService    *user.Service
	storageService *storage.Service
	sessionService *session.Service
	logger         *logger.Logger
}

// NewHandler creates a new user handler
func NewHandler(userService *user.Service, storageService *storage.Service, sessionService *session.Service, log *logger.Logger) *Handler {
	return &Handler{
		userService:    userService,
		storageService: storageService,
		sessionService: sessionService,
		logger:         log,
	}
}

// secureLog logs errors without sensitive data
func (h *Handler) secureLog(err error, message string, route string) {
	requestID := utils.GenerateShortID()
	h.logger.WithFields(logrus.Fields{
		"requestID": requestID,
		"route":     route,
		"errorMsg":  err.Error(),
	}).Error(message)
}
