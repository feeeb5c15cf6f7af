package setup

import (
	"net/http"

	"cloudvault-api/internal/auth"
	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/utils"
	"cloudvault-api/pkg/status"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler manages first-run setup requests
type Handler struct {
	authService *auth.Service
	logger      *logger.Logger
}

// NewHandler creates a new setup handler
func NewHandler(authService *auth.Service, log *logger.Logger) *Handler {
	return &Handler{
		authService: authService,
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

// HandleSetupStatus reports whether first-run setup is still required
func (h *Handler) HandleSetupStatus(c *gin.Context) {
	setupStatus, err := h.authService.GetSetupStatus(c.Request.Context())
	if err != nil {
		h.secureLog(err, "Failed to determine setup status", "/setup/status")
		c.JSON(http.StatusInternalServerError, NewErrorResponse("Failed to determine setup status", status.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, NewStatusResponse(setupStatus.NeedsSetup, status.StatusOK))
}

// HandleCompleteSetup creates the first account, which becomes the owner
func (h *Handler) HandleCompleteSetup(c *gin.Context) {
	var req CompleteSetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.secureLog(err, "Invalid setup request format", "/setup")
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse("Invalid request format", status.StatusValidationFailed))
		return
	}

	owner, err := h.authService.CompleteSetup(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		h.secureLog(err, "Setup failed", "/setup")

		statusCode := http.StatusInternalServerError
		apiStatus := status.StatusInternalServerError

		switch err {
		case auth.ErrSetupAlreadyDone:
			statusCode = http.StatusConflict
			apiStatus = status.StatusSetupAlreadyDone
		case auth.ErrInvalidEmail:
			statusCode = http.StatusUnprocessableEntity
			apiStatus = status.StatusInvalidEmail
		case auth.ErrInvalidUsername:
			statusCode = http.StatusUnprocessableEntity
			apiStatus = status.StatusValidationFailed
		case auth.ErrInvalidPassword:
			statusCode = http.StatusUnprocessableEntity
			apiStatus = status.StatusWeakPassword
		}

		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusCreated, NewCompleteResponse(owner.ID, status.StatusSetupComplete))
}
