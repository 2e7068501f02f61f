package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Constants ===================== */

// Tipe kamar mengikuti penghuni: asrama putra / putri
const (
	RoomTypePutra = "PUTRA"
	RoomTypePutri = "PUTRI"
)

/* ===================== Model ===================== */

type RoomModel struct {
	RoomID uuid.UUID `gorm:"column:room_id;type:uuid;primaryKey" json:"room_id"`

	RoomNumber      string  `gorm:"column:room_number;type:varchar(20);not null;uniqueIndex" json:"room_number"`
	RoomType        string  `gorm:"column:room_type;type:varchar(10);not null" json:"room_type"` // PUTRA / PUTRI
	RoomCapacity    int     `gorm:"column:room_capacity;not null;check:room_capacity >= 1" json:"room_capacity"`
	RoomFloor       int     `gorm:"column:room_floor;not null;default:1" json:"room_floor"`
	RoomDescription *string `gorm:"column:room_description;type:text" json:"room_description,omitempty"`

	RoomCreatedAt time.Time  `gorm:"column:room_created_at;autoCreateTime" json:"room_created_at"`
	RoomUpdatedAt *time.Time `gorm:"column:room_updated_at;autoUpdateTime" json:"room_updated_at,omitempty"`
}

func (RoomModel) TableName() string { return "rooms" }

// BeforeCreate mengisi ID kalau belum diset (supaya jalan juga di driver
// tanpa gen_random_uuid, mis. sqlite saat test)
func (m *RoomModel) BeforeCreate(tx *gorm.DB) error {
	if m.RoomID == uuid.Nil {
		m.RoomID = uuid.New()
	}
	return nil
}
