package router

import (
	"sharesphere/internal/adapter/api/handler"
	"sharesphere/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/v1/users/me")
	users.Use(authMiddleware.Authenticate)

	users.GET("/credits", userHandler.GetCredits)
	users.GET("/uploads", userHandler.GetMyUploads)
	users.GET("/transactions", userHandler.GetTransactions)
}
