package setup

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers setup routes
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	setupGroup := r.Group("/setup")
	setupGroup.GET("/status", h.HandleSetupStatus)
	setupGroup.POST("", h.HandleCompleteSetup)
}
