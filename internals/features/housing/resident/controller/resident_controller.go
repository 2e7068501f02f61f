package controller

import (
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hoh_backend/internals/apperr"
	"hoh_backend/internals/features/housing/resident/dto"
	model "hoh_backend/internals/features/housing/resident/model"
	"hoh_backend/internals/features/housing/resident/service"
	helper "hoh_backend/internals/helpers"
	"hoh_backend/internals/helpers/storage"
)

var validate = validator.New()

type ResidentController struct {
	DB      *gorm.DB
	Service *service.ResidentService
}

func NewResidentController(db *gorm.DB, store storage.FileStorage) *ResidentController {
	return &ResidentController{
		DB:      db,
		Service: service.NewResidentService(db, store),
	}
}

// Ambil lampiran dari field "files" (multipart); request JSON biasa dapat slice kosong.
func formFiles(c *fiber.Ctx) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["files"]
}

// POST /api/residents
func (ctrl *ResidentController) Create(c *fiber.Ctx) error {
	var req dto.CreateResidentRequest
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

	if err := ctrl.Service.Create(c.UserContext(), m, formFiles(c)); err != nil {
		return apperr.ToFiber(err)
	}
	return helper.JsonCreated(c, "Penghuni berhasil didaftarkan", m)
}

// GET /api/residents
func (ctrl *ResidentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctrl.DB.Model(&model.ResidentModel{})
	if status := c.Query("status"); status != "" {
		tx = tx.Where("resident_status = ?", status)
	}
	if gender := c.Query("gender"); gender != "" {
		tx = tx.Where("resident_gender = ?", gender)
	}
	if roomID := c.Query("room_id"); roomID != "" {
		id, err := uuid.Parse(roomID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "room_id tidak valid")
		}
		tx = tx.Where("resident_room_id = ?", id)
	}
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("resident_name LIKE ? OR resident_nik LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data penghuni")
	}

	var residents []model.ResidentModel
	if err := tx.Preload("Documents").
		Order("resident_name ASC").
		Offset(paging.Offset).Limit(paging.PerPage).
		Find(&residents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data penghuni")
	}

	return helper.JsonList(c, "OK", residents, helper.BuildPagination(total, paging))
}

// GET /api/residents/:id
func (ctrl *ResidentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID penghuni tidak valid")
	}
	resident, err := ctrl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return apperr.ToFiber(err)
	}
	return helper.JsonOK(c, "OK", resident)
}

// PUT /api/residents/:id
func (ctrl *ResidentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID penghuni tidak valid")
	}

	var req dto.UpdateResidentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	resident, err := ctrl.Service.Update(c.UserContext(), id, req, formFiles(c))
	if err != nil {
		return apperr.ToFiber(err)
	}
	return helper.JsonUpdated(c, "Data penghuni berhasil diperbarui", resident)
}

// DELETE /api/residents/:id
func (ctrl *ResidentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID penghuni tidak valid")
	}
	if err := ctrl.Service.Delete(c.UserContext(), id); err != nil {
		return apperr.ToFiber(err)
	}
	return helper.JsonDeleted(c, "Penghuni berhasil dihapus", fiber.Map{"resident_id": id})
}

// DELETE /api/residents/:id/documents/:document_id
func (ctrl *ResidentController) DeleteDocument(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID penghuni tidak valid")
	}
	docID, err := uuid.Parse(c.Params("document_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID dokumen tidak valid")
	}
	if err := ctrl.Service.DeleteDocument(c.UserContext(), id, docID); err != nil {
		return apperr.ToFiber(err)
	}
	return helper.JsonDeleted(c, "Dokumen berhasil dihapus", fiber.Map{"document_id": docID})
}
