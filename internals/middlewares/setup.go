package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMiddleware "hoh_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar pada app
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMiddleware.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
