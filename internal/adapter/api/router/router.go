package router

import (
	"sharesphere/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, userMiddleware *middleware.UserMiddleware) {
	SetupFileRouter(e, authMiddleware, userMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
