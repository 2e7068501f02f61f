package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusExpired  = "expired"
	PaymentStatusCanceled = "canceled"
)

const (
	PaymentTypeCash     = "cash"
	PaymentTypeTransfer = "transfer"
	PaymentTypeInvoice  = "invoice"
)

type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`

	PaymentResidentID uuid.UUID `gorm:"column:payment_resident_id;type:uuid;not null;index" json:"payment_resident_id"`

	PaymentAmount int64   `gorm:"column:payment_amount;not null;check:payment_amount > 0" json:"payment_amount"`
	PaymentType   string  `gorm:"column:payment_type;type:varchar(10);not null;default:'cash'" json:"payment_type"`     // cash / transfer / invoice
	PaymentStatus string  `gorm:"column:payment_status;type:varchar(10);not null;default:'paid'" json:"payment_status"` // pending / paid / expired / canceled
	PaymentNotes  *string `gorm:"column:payment_notes;type:text" json:"payment_notes,omitempty"`

	PaymentDate datatypes.Date `gorm:"column:payment_date;not null" json:"payment_date"`

	// Diisi hanya untuk tipe invoice (Midtrans)
	PaymentOrderID *string    `gorm:"column:payment_order_id;type:varchar(50);uniqueIndex" json:"payment_order_id,omitempty"`
	PaymentToken   *string    `gorm:"column:payment_token;type:text" json:"payment_token,omitempty"`
	PaymentPaidAt  *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`

	PaymentCreatedAt time.Time  `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt *time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	return nil
}
