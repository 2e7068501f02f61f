package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hoh_backend/internals/constants"
)

// UserModel merepresentasikan tabel users (akun admin/staff dashboard)
type UserModel struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserName string    `gorm:"column:user_name;size:50;not null" json:"user_name"`
	Email    string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	Password string    `gorm:"column:password;not null" json:"-"`
	Role     string    `gorm:"column:role;type:varchar(20);not null;default:'STAFF'" json:"role"`
	// Pointer supaya nilai false ikut terkirim saat Create (bool biasa dianggap zero-value oleh GORM)
	IsActive *bool `gorm:"column:is_active;not null;default:true" json:"is_active"`

	// Reset password (token sekali pakai + kadaluarsa)
	ResetToken       *string    `gorm:"column:reset_token;size:64;index" json:"-"`
	ResetTokenExpiry *time.Time `gorm:"column:reset_token_expiry" json:"-"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = constants.RoleStaff
	}
	if u.IsActive == nil {
		active := true
		u.IsActive = &active
	}
	return nil
}
