package rooms

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	model "hoh_backend/internals/features/housing/room/model"
)

type RoomSeed struct {
	RoomNumber      string  `json:"room_number"`
	RoomType        string  `json:"room_type"`
	RoomCapacity    int     `json:"room_capacity"`
	RoomFloor       int     `json:"room_floor"`
	RoomDescription *string `json:"room_description"`
}

func SeedRoomsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file kamar:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []RoomSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		var existing model.RoomModel
		if err := db.Where("room_number = ?", data.RoomNumber).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Kamar '%s' sudah ada, dilewati.", data.RoomNumber)
			continue
		}

		newRoom := model.RoomModel{
			RoomNumber:      data.RoomNumber,
			RoomType:        data.RoomType,
			RoomCapacity:    data.RoomCapacity,
			RoomFloor:       data.RoomFloor,
			RoomDescription: data.RoomDescription,
		}

		if err := db.Create(&newRoom).Error; err != nil {
			log.Printf("❌ Gagal insert kamar '%s': %v", data.RoomNumber, err)
		} else {
			log.Printf("✅ Berhasil insert kamar '%s'", data.RoomNumber)
		}
	}
}
