package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "hoh_backend/internals/features/finance/payment/model"
)

const dateLayout = "2006-01-02"

type CreatePaymentRequest struct {
	PaymentResidentID uuid.UUID `json:"payment_resident_id" validate:"required"`
	PaymentAmount     int64     `json:"payment_amount" validate:"required,gt=0"`
	PaymentType       string    `json:"payment_type" validate:"omitempty,oneof=cash transfer invoice"`
	PaymentStatus     string    `json:"payment_status" validate:"omitempty,oneof=pending paid expired canceled"`
	PaymentNotes      *string   `json:"payment_notes"`
	PaymentDate       string    `json:"payment_date" validate:"required,datetime=2006-01-02"`
}

func (r CreatePaymentRequest) ToModel() (*model.PaymentModel, error) {
	t, err := time.Parse(dateLayout, r.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("format tanggal harus YYYY-MM-DD: %s", r.PaymentDate)
	}

	paymentType := r.PaymentType
	if paymentType == "" {
		paymentType = model.PaymentTypeCash
	}
	status := r.PaymentStatus
	if status == "" {
		status = model.PaymentStatusPaid
	}

	return &model.PaymentModel{
		PaymentResidentID: r.PaymentResidentID,
		PaymentAmount:     r.PaymentAmount,
		PaymentType:       paymentType,
		PaymentStatus:     status,
		PaymentNotes:      r.PaymentNotes,
		PaymentDate:       datatypes.Date(t),
	}, nil
}

type UpdatePaymentRequest struct {
	PaymentAmount *int64  `json:"payment_amount" validate:"omitempty,gt=0"`
	PaymentType   *string `json:"payment_type" validate:"omitempty,oneof=cash transfer invoice"`
	PaymentStatus *string `json:"payment_status" validate:"omitempty,oneof=pending paid expired canceled"`
	PaymentNotes  *string `json:"payment_notes"`
	PaymentDate   *string `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r UpdatePaymentRequest) ToUpdates() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if r.PaymentAmount != nil {
		updates["payment_amount"] = *r.PaymentAmount
	}
	if r.PaymentType != nil {
		updates["payment_type"] = *r.PaymentType
	}
	if r.PaymentStatus != nil {
		updates["payment_status"] = *r.PaymentStatus
	}
	if r.PaymentNotes != nil {
		updates["payment_notes"] = *r.PaymentNotes
	}
	if r.PaymentDate != nil {
		t, err := time.Parse(dateLayout, *r.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("format tanggal harus YYYY-MM-DD: %s", *r.PaymentDate)
		}
		updates["payment_date"] = datatypes.Date(t)
	}
	return updates, nil
}

type SnapTokenResponse struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	OrderID     string    `json:"order_id"`
	Token       string    `json:"token"`
	RedirectURL string    `json:"redirect_url"`
}
