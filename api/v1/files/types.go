package files

import (
	"cloudvault-api/internal/files"
	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/utils"

	"github.com/sirupsen/logrus"
)

// Handler manages file-related HTTP requests
type Handler struct {
	fileService *files.Service
	logger      *logger.Logger
}

// NewHandler creates a new files handler
func NewHandler(fileService *files.Service, log *logger.Logger) *Handler {
	return &Handler{
		fileService: fileService,
		logger:      log,
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
