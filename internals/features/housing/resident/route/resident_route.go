package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hoh_backend/internals/features/housing/resident/controller"
	"hoh_backend/internals/helpers/storage"
	authMiddleware "hoh_backend/internals/middlewares/auth"
)

// ResidentRoutes mendaftarkan endpoint penghuni di bawah group /residents.
// Baca untuk semua user login, mutasi khusus ADMIN.
func ResidentRoutes(api fiber.Router, db *gorm.DB, store storage.FileStorage) {
	ctrl := controller.NewResidentController(db, store)

	residents := api.Group("/residents")

	residents.Get("/", ctrl.List)
	residents.Get("/:id", ctrl.GetByID)

	// 🔐 Mutasi hanya untuk ADMIN
	residents.Post("/", authMiddleware.RequireAdmin(), ctrl.Create)
	residents.Put("/:id", authMiddleware.RequireAdmin(), ctrl.Update)
	residents.Delete("/:id", authMiddleware.RequireAdmin(), ctrl.Delete)
	residents.Delete("/:id/documents/:document_id", authMiddleware.RequireAdmin(), ctrl.DeleteDocument)
}
