package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hoh_backend/internals/apperr"
	model "hoh_backend/internals/features/finance/payment/model"
	residentModel "hoh_backend/internals/features/housing/resident/model"
)

type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

// SnapInfo dikembalikan hanya untuk pembayaran bertipe invoice.
type SnapInfo struct {
	Token       string
	RedirectURL string
}

// Create mencatat pembayaran. Tipe invoice dibuatkan Snap token Midtrans dan
// statusnya dipaksa pending sampai webhook masuk; tipe lain yang berstatus
// paid langsung diberi stempel waktu lunas.
func (s *PaymentService) Create(ctx context.Context, m *model.PaymentModel) (*SnapInfo, error) {
	var resident residentModel.ResidentModel
	if err := s.DB.WithContext(ctx).
		First(&resident, "resident_id = ?", m.PaymentResidentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Constraint("penghuni tidak ditemukan")
		}
		return nil, err
	}

	var snapInfo *SnapInfo
	if m.PaymentType == model.PaymentTypeInvoice {
		orderID := fmt.Sprintf("HOH-%s", strings.ToUpper(uuid.NewString()[:8]))
		token, redirectURL, err := GenerateSnapToken(orderID, m.PaymentAmount, resident.ResidentName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrUpstream, err)
		}
		m.PaymentOrderID = &orderID
		m.PaymentToken = &token
		m.PaymentStatus = model.PaymentStatusPending
		snapInfo = &SnapInfo{Token: token, RedirectURL: redirectURL}
	} else if m.PaymentStatus == model.PaymentStatusPaid {
		now := time.Now()
		m.PaymentPaidAt = &now
	}

	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return snapInfo, nil
}

func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*model.PaymentModel, error) {
	var payment model.PaymentModel
	if err := s.DB.WithContext(ctx).First(&payment, "payment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*model.PaymentModel, error) {
	var payment model.PaymentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&payment, "payment_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		// Transisi manual ke paid juga mengisi paid_at.
		if status, ok := updates["payment_status"].(string); ok &&
			status == model.PaymentStatusPaid && payment.PaymentPaidAt == nil {
			updates["payment_paid_at"] = time.Now()
		}
		return tx.Model(&payment).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&model.PaymentModel{}, "payment_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
