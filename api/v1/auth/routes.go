package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers auth routes that need no authentication
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	authGroup := r.Group("/auth")

	authGroup.POST("/signup", h.HandleSignup)
	authGroup.POST("/login", h.HandleLogin)
}

// RegisterProtectedRoutes registers auth routes that require authentication
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	authGroup := r.Group("")

	authGroup.GET("/me", h.HandleMe)
	authGroup.POST("/refresh", h.HandleRefreshToken)
	authGroup.POST("/logout", h.HandleLogout)
	authGroup.POST("/change-password", h.HandleChangePassword)
}
