package users

import (
	"cloudvault-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterProtectedRoutes registers user routes
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	userGroup := r.Group("")

	userGroup.GET("/me", h.GetMe)
	userGroup.PATCH("/me", h.UpdateMe)
	userGroup.GET("/me/storage", h.GetMyStorage)

	// Admin-only account and quota management
	adminGroup := r.Group("")
	adminGroup.Use(middleware.AdminRequiredMiddleware())
	adminGroup.PATCH("/:id/storage", h.SetUserMaxSpace)
	adminGroup.DELETE("/:id", h.DeleteUser)
}
