package upload

import "github.com/gin-gonic/gin"

// RegisterRoutes registers upload routes. Uploads are public: access
// control is left to whatever sits in front of the API.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	uploads := r.Group("/uploads")
	{
		uploads.POST("/:subdir", h.Upload)
		uploads.POST("/:subdir/batch", h.UploadBatch)
	}
}
