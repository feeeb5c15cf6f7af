package sessions

import (
	"net/http"

	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/session"
	"cloudvault-api/internal/utils"
	"cloudvault-api/pkg/status"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler handles session-related requests
type Handler struct {
	sessionService *session.Service
	logger         *logger.Logger
}

// NewHandler creates a new session handler
func NewHandler(sessionService *session.Service, log *logger.Logger) *Handler {
	return &Handler{
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

// contextString extracts a string value from the gin context
func contextString(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

// sessionErrorStatus maps session service errors to HTTP and API codes
func sessionErrorStatus(err error) (int, int16) {
	switch err {
	case session.ErrSessionNotFound:
		return http.StatusNotFound, status.StatusNotFound
	case session.ErrSessionExpired:
		return http.StatusUnauthorized, status.StatusSessionExpired
	case session.ErrSessionInvalid:
		return http.StatusUnauthorized, status.StatusInvalidSession
	case session.ErrInvalidInput:
		return http.StatusBadRequest, status.StatusBadRequest
	default:
		return http.StatusInternalServerError, status.StatusInternalServerError
	}
}

// GetCurrentSession retrieves the current session information
func (h *Handler) GetCurrentSession(c *gin.Context) {
	sessionID, ok := contextString(c, "sessionID")
	if !ok {
		h.secureLog(session.ErrSessionNotFound, "Session ID not found in context", "getSession")
		c.JSON(http.StatusUnauthorized, NewErrorResponse("Session not found", status.StatusUnauthorized))
		return
	}

	userSession, err := h.sessionService.GetSessionByID(c.Request.Context(), sessionID)
	if err != nil {
		h.secureLog(err, err.Error(), "getSession")
		statusCode, apiStatus := sessionErrorStatus(err)
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	c.JSON(http.StatusOK, NewSessionResponse(userSession, sessionID, status.StatusOK))
}

// GetAllActiveSessions retrieves all active sessions for the current user
func (h *Handler) GetAllActiveSessions(c *gin.Context) {
	userID, ok := contextString(c, "userID")
	if !ok {
		h.secureLog(session.ErrInvalidInput, "User ID not found in context", "getAllSessions")
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	currentSessionID, _ := contextString(c, "sessionID")

	sessions, err := h.sessionService.GetUserSessions(c.Request.Context(), userID)
	if err != nil {
		h.secureLog(err, err.Error(), "getAllSessions")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, NewSessionsListResponse(sessions, currentSessionID, status.StatusOK))
}

// InvalidateAllSessions invalidates all sessions for the current user
func (h *Handler) InvalidateAllSessions(c *gin.Context) {
	userID, ok := contextString(c, "userID")
	if !ok {
		h.secureLog(session.ErrInvalidInput, "User ID not found in context", "invalidateAllSessions")
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	if err := h.sessionService.InvalidateAllUserSessions(c.Request.Context(), userID); err != nil {
		h.secureLog(err, err.Error(), "invalidateAllSessions")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusInternalServerError))
		return
	}

	c.SetCookie("sessionID", "", -1, "/", "localhost", false, true)
	c.SetCookie("accessToken", "", -1, "/api/v1", "localhost", false, true)
	c.SetCookie("refreshToken", "", -1, "/api/v1/auth/refresh", "localhost", false, true)

	c.JSON(http.StatusOK, NewSuccessResponse(status.StatusSessionRevoked))
}

// InvalidateSessionByID invalidates a specific session by ID
func (h *Handler) InvalidateSessionByID(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		h.secureLog(session.ErrInvalidInput, "Session ID not provided", "invalidateSessionById")
		c.JSON(http.StatusBadRequest, NewErrorResponse("Session ID required", status.StatusBadRequest))
		return
	}

	userID, ok := contextString(c, "userID")
	if !ok {
		h.secureLog(session.ErrInvalidInput, "User ID not found in context", "invalidateSessionById")
		c.JSON(http.StatusUnauthorized, NewErrorResponse("User not authenticated", status.StatusUnauthorized))
		return
	}

	// The session has to belong to the caller
	target, err := h.sessionService.GetSessionByID(c.Request.Context(), sessionID)
	if err != nil {
		h.secureLog(err, err.Error(), "invalidateSessionById")
		statusCode, apiStatus := sessionErrorStatus(err)
		c.JSON(statusCode, NewErrorResponse(err.Error(), apiStatus))
		return
	}

	if target.UserID != userID {
		h.secureLog(session.ErrUnauthorized, "Unauthorized session access", "invalidateSessionById")
		c.JSON(http.StatusForbidden, NewErrorResponse("You do not have permission to revoke this session", status.StatusForbidden))
		return
	}

	if err := h.sessionService.InvalidateSession(c.Request.Context(), sessionID); err != nil {
		h.secureLog(err, err.Error(), "invalidateSessionById")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error(), status.StatusInternalServerError))
		return
	}

	// Clear cookies if the revoked session is the current one
	if currentSessionID, _ := contextString(c, "sessionID"); currentSessionID == sessionID {
		c.SetCookie("sessionID", "", -1, "/", "localhost", false, true)
		c.SetCookie("accessToken", "", -1, "/api/v1", "localhost", false, true)
		c.SetCookie("refreshToken", "", -1, "/api/v1/auth/refresh", "localhost", false, true)
	}

	c.JSON(http.StatusOK, NewSuccessResponse(status.StatusSessionRevoked))
}
