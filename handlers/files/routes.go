package files

import (
	"api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to challenge files
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup) {

	files := r.Group("/files")
	files.Use(middleware.AuthMiddleware())
	{
		files.GET("/download/:filename", DownloadFile)
	}

	adminFiles := r.Group("/files")
	adminFiles.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		adminFiles.POST("/upload", UploadFile)
		adminFiles.GET("/list", ListFiles)
		adminFiles.DELETE("/delete/:filename", DeleteFile)
	}
}
