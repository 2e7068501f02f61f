package route

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentRoute "hoh_backend/internals/features/finance/payment/route"
	residentRoute "hoh_backend/internals/features/housing/resident/route"
	roomRoute "hoh_backend/internals/features/housing/room/route"
	"hoh_backend/internals/features/notifications/mailer"
	authRoute "hoh_backend/internals/features/users/auth/route"
	"hoh_backend/internals/helpers/storage"
	authMiddleware "hoh_backend/internals/middlewares/auth"
)

var startTime time.Time

// SetupRoutes merakit seluruh endpoint aplikasi.
// Semua fitur hidup di bawah /api dengan AuthMiddleware; endpoint publik
// (login, forgot/reset password, webhook Midtrans) dikecualikan di middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB, store storage.FileStorage, dispatcher *mailer.Dispatcher) {
	startTime = time.Now()

	BaseRoutes(app, db)

	api := app.Group("/api", authMiddleware.AuthMiddleware())

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(api, db, dispatcher)

	log.Println("[INFO] Setting up RoomRoutes...")
	roomRoute.RoomRoutes(api, db)

	log.Println("[INFO] Setting up ResidentRoutes...")
	residentRoute.ResidentRoutes(api, db, store)

	log.Println("[INFO] Setting up PaymentRoutes...")
	paymentRoute.PaymentRoutes(api, db)
}
