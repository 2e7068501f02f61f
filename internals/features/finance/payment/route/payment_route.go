package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hoh_backend/internals/features/finance/payment/controller"
	authMiddleware "hoh_backend/internals/middlewares/auth"
)

// PaymentRoutes mendaftarkan endpoint pembayaran. Webhook Midtrans terdaftar
// di sini juga; path-nya dikecualikan dari AuthMiddleware.
func PaymentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db)

	payments := api.Group("/payments")

	payments.Post("/notification", ctrl.HandleNotification)
	payments.Get("/", ctrl.List)
	payments.Get("/:id", ctrl.GetByID)

	// 🔐 Mutasi hanya untuk ADMIN
	payments.Post("/", authMiddleware.RequireAdmin(), ctrl.Create)
	payments.Put("/:id", authMiddleware.RequireAdmin(), ctrl.Update)
	payments.Delete("/:id", authMiddleware.RequireAdmin(), ctrl.Delete)
}
