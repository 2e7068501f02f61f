package service

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"hoh_backend/internals/apperr"
	model "hoh_backend/internals/features/finance/payment/model"
)

// HandlePaymentStatusWebhook dipanggil saat menerima notifikasi dari Midtrans
func HandlePaymentStatusWebhook(db *gorm.DB, body map[string]interface{}) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)

	if !ok1 || !ok2 {
		log.Println("[ERROR] Payload webhook tidak lengkap:", body)
		return apperr.Constraint("payload webhook tidak lengkap")
	}

	log.Println("📄 Order ID:", orderID)
	log.Println("📌 Transaction Status:", status)

	var payment model.PaymentModel
	if err := db.Where("payment_order_id = ?", orderID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("[ERROR] Pembayaran tidak ditemukan untuk order:", orderID)
			return apperr.ErrNotFound
		}
		return err
	}

	switch status {
	case "capture", "settlement":
		now := time.Now()
		payment.PaymentStatus = model.PaymentStatusPaid
		payment.PaymentPaidAt = &now

	case "expire":
		payment.PaymentStatus = model.PaymentStatusExpired
	case "cancel":
		payment.PaymentStatus = model.PaymentStatusCanceled
	default:
		log.Println("[INFO] Status tidak diproses:", status)
	}

	if err := db.Save(&payment).Error; err != nil {
		log.Println("[ERROR] Gagal menyimpan status pembayaran:", err)
		return err
	}

	return nil
}
