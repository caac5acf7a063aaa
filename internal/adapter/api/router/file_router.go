package router

import (
	"sharesphere/internal/adapter/api/handler"
	"sharesphere/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupFileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, userMiddleware *middleware.UserMiddleware) {
	fileHandler := handler.GetFileHandler()

	// Raw fetch by stored filename is the one unauthenticated path.
	e.GET("/v1/files/raw/:filename", fileHandler.FetchFile)

	files := e.Group("/v1/files")
	files.Use(authMiddleware.Authenticate)
	files.Use(userMiddleware.AttachUser)

	files.POST("", fileHandler.UploadFile)
	files.GET("", fileHandler.ListFiles)
	files.GET("/:fileID/preview", fileHandler.PreviewFile)
	files.GET("/:fileID/download", fileHandler.DownloadFile)
	files.POST("/:fileID/like", fileHandler.LikeFile)
	files.DELETE("/:fileID", fileHandler.DeleteFile)
}
