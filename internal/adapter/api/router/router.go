package router

import (
	"github.com/labstack/echo/v4"

	"padstock/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupProductRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
