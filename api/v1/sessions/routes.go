package sessions

import (
	"github.com/gin-gonic/gin"
)

// RegisterProtectedRoutes registers session routes
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	sessionGroup := r.Group("")
	{
		// Current session
		sessionGroup.GET("/current", h.GetCurrentSession)

		// All sessions for the current user
		sessionGroup.GET("", h.GetAllActiveSessions)

		// Revoke all sessions for the current user
		sessionGroup.DELETE("", h.InvalidateAllSessions)

		// Revoke a specific session
		sessionGroup.DELETE("/:id", h.InvalidateSessionByID)
	}
}
