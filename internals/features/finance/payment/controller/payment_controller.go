package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hoh_backend/internals/apperr"
	"hoh_backend/internals/features/finance/payment/dto"
	model "hoh_backend/internals/features/finance/payment/model"
	"hoh_backend/internals/features/finance/payment/service"
	helper "hoh_backend/internals/helpers"
)

var validate = validator.New()

type PaymentController struct {
	DB      *gorm.DB
	Service *service.PaymentService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db, Service: service.NewPaymentService(db)}
}

// POST /api/payments
func (ctrl *PaymentController) Create(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	snapInfo, err := ctrl.Service.Create(c.UserContext(), m)
	if err != nil {
		return apperr.ToFiber(err)
	}

	if snapInfo != nil {
		return helper.JsonCreated(c, "Tagihan berhasil dibuat", fiber.Map{
			"payment":      m,
			"token":        snapInfo.Token,
			"redirect_url": snapInfo.RedirectURL,
		})
	}
	return helper.JsonCreated(c, "Pembayaran berhasil dicatat", m)
}

// GET /api/payments?resident_id=&status=&type=
func (ctrl *PaymentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctrl.DB.Model(&model.PaymentModel{})
	if residentID := c.Query("resident_id"); residentID != "" {
		id, err := uuid.Parse(residentID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "resident_id tidak valid")
		}
		tx = tx.Where("payment_resident_id = ?", id)
	}
	if status := c.Query("status"); status != "" {
		tx = tx.Where("payment_status = ?", status)
	}
	if paymentType := c.Query("type"); paymentType != "" {
		tx = tx.Where("payment_type = ?", paymentType)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data pembayaran")
	}

	var payments []model.PaymentModel
	if err := tx.Order("payment_date DESC, payment_created_at DESC").
		Offset(paging.Offset).Limit(paging.PerPage).
		Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data pembayaran")
	}

	return helper.JsonList(c, "OK", payments, helper.BuildPagination(total, paging))
}

// GET /api/payments/:id
func (ctrl *PaymentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pembayaran tidak valid")
	}
	payment, err := ctrl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return apperr.ToFiber(err)
	}
	return helper.JsonOK(c, "OK", payment)
}

// PUT /api/payments/:id
func (ctrl *PaymentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pembayaran tidak valid")
	}

	var req dto.UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	updates, err := req.ToUpdates()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	payment, err := ctrl.Service.Update(c.UserContext(), id, updates)
	if err != nil {
		return apperr.ToFiber(err)
	}
	return helper.JsonUpdated(c, "Pembayaran berhasil diperbarui", payment)
}

// DELETE /api/payments/:id
func (ctrl *PaymentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pembayaran tidak valid")
	}
	if err := ctrl.Service.Delete(c.UserContext(), id); err != nil {
		return apperr.ToFiber(err)
	}
	return helper.JsonDeleted(c, "Pembayaran berhasil dihapus", fiber.Map{"payment_id": id})
}

// POST /api/payments/notification — endpoint webhook Midtrans (tanpa auth)
func (ctrl *PaymentController) HandleNotification(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		log.Println("[ERROR] Gagal parsing notifikasi Midtrans:", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := service.HandlePaymentStatusWebhook(ctrl.DB, body); err != nil {
		return apperr.ToFiber(err)
	}
	return helper.JsonOK(c, "Notifikasi diproses", nil)
}
