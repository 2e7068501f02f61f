package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "hoh_backend/internals/features/users/auth/controller"
	authService "hoh_backend/internals/features/users/auth/service"
	"hoh_backend/internals/features/notifications/mailer"
	authMiddleware "hoh_backend/internals/middlewares/auth"
	"hoh_backend/internals/middlewares"
)

func AuthRoutes(api fiber.Router, db *gorm.DB, dispatcher *mailer.Dispatcher) {
	ctrl := authController.NewAuthController(authService.NewAuthService(db, dispatcher))

	auth := api.Group("/auth")

	// Public
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/forgot-password", middlewares.ForgotPasswordRateLimiter(), ctrl.ForgotPassword)
	auth.Post("/reset-password", ctrl.ResetPassword)

	// Butuh token (AuthMiddleware sudah terpasang di group /api)
	auth.Get("/me", ctrl.Me)
	auth.Post("/change-password", ctrl.ChangePassword)
	auth.Post("/logout", ctrl.Logout)

	// 🔐 Admin only
	auth.Post("/register", authMiddleware.RequireAdmin(), ctrl.Register)
}
