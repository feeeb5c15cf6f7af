package files

import (
	"github.com/gin-gonic/gin"
)

// RegisterProtectedRoutes registers file routes
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	fileGroup := r.Group("")
	{
		fileGroup.GET("", h.HandleListFolder)
		fileGroup.POST("/folders", h.HandleCreateFolder)
		fileGroup.POST("/uploads", h.HandleInitiateUpload)
		fileGroup.POST("/uploads/:id/complete", h.HandleCompleteUpload)
		fileGroup.GET("/:id", h.HandleGetFile)
		fileGroup.GET("/:id/download", h.HandleGetDownloadURL)
		fileGroup.GET("/:id/preview", h.HandleGetPreview)
		fileGroup.PATCH("/:id/rename", h.HandleRename)
		fileGroup.PATCH("/:id/move", h.HandleMove)
		fileGroup.DELETE("/:id", h.HandleDelete)
	}
}
