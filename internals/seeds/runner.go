package seeds

import (
	"gorm.io/gorm"

	rooms "hoh_backend/internals/seeds/housing/rooms"
	users "hoh_backend/internals/seeds/users"
)

// RunAllSeeds mengisi data awal; setiap seeder idempotent (skip kalau sudah ada).
func RunAllSeeds(db *gorm.DB) {
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
	rooms.SeedRoomsFromJSON(db, "internals/seeds/housing/rooms/data_rooms.json")
}
