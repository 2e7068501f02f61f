package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	roomController "hoh_backend/internals/features/housing/room/controller"
	roomService "hoh_backend/internals/features/housing/room/service"
	authMiddleware "hoh_backend/internals/middlewares/auth"
)

func RoomRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := roomController.NewRoomController(roomService.NewRoomService(db))

	rooms := api.Group("/rooms")

	rooms.Get("/", ctrl.List)
	rooms.Get("/:id", ctrl.GetByID)
	rooms.Get("/:id/availability", ctrl.CheckAvailability)

	// 🔐 Mutasi hanya untuk ADMIN
	rooms.Post("/", authMiddleware.RequireAdmin(), ctrl.Create)
	rooms.Put("/:id", authMiddleware.RequireAdmin(), ctrl.Update)
	rooms.Delete("/:id", authMiddleware.RequireAdmin(), ctrl.Delete)
}
