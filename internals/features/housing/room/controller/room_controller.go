package controller

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hoh_backend/internals/apperr"
	dto "hoh_backend/internals/features/housing/room/dto"
	model "hoh_backend/internals/features/housing/room/model"
	service "hoh_backend/internals/features/housing/room/service"
	helper "hoh_backend/internals/helpers"
)

var validate = validator.New()

type RoomController struct {
	DB      *gorm.DB
	Service *service.RoomService
}

func NewRoomController(svc *service.RoomService) *RoomController {
	return &RoomController{DB: svc.DB, Service: svc}
}

/* ======================= CREATE ======================= */
// POST /api/rooms
func (h *RoomController) Create(c *fiber.Ctx) error {
	var req dto.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	m := req.ToModel()
	if err := h.Service.Create(c.UserContext(), m); err != nil {
		return apperr.ToFiber(err)
	}
	return helper.JsonCreated(c, "Kamar berhasil dibuat", m)
}

/* ======================= GET BY ID ======================= */
// GET /api/rooms/:id
func (h *RoomController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	room, err := h.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return apperr.ToFiber(err)
	}
	return helper.JsonOK(c, "OK", room)
}

/* ======================= LIST ======================= */
// GET /api/rooms?type=&floor=&q=&page=&per_page=
func (h *RoomController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	base := h.DB.WithContext(c.UserContext()).Model(&model.RoomModel{})

	if t := strings.TrimSpace(c.Query("type")); t != "" {
		base = base.Where("room_type = ?", strings.ToUpper(t))
	}
	if f := c.QueryInt("floor", -1); f >= 0 {
		base = base.Where("room_floor = ?", f)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := fmt.Sprintf("%%%s%%", q)
		base = base.Where("(room_number LIKE ? OR room_description LIKE ?)", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rooms []model.RoomModel
	if err := base.
		Order("room_floor ASC, room_number ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rooms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", rooms, helper.BuildPagination(total, paging))
}

/* ======================= UPDATE (partial) ======================= */
// PUT /api/rooms/:id
func (h *RoomController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	room, err := h.Service.Update(c.UserContext(), id, req.ToUpdates())
	if err != nil {
		return apperr.ToFiber(err)
	}
	return helper.JsonUpdated(c, "Kamar berhasil diupdate", room)
}

/* ======================= DELETE ======================= */
// DELETE /api/rooms/:id
func (h *RoomController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := h.Service.Delete(c.UserContext(), id); err != nil {
		return apperr.ToFiber(err)
	}
	return helper.JsonDeleted(c, "Kamar berhasil dihapus", nil)
}

/* ======================= AVAILABILITY ======================= */
// GET /api/rooms/:id/availability
func (h *RoomController) CheckAvailability(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	av, err := h.Service.CheckAvailability(c.UserContext(), id)
	if err != nil {
		return apperr.ToFiber(err)
	}
	return helper.JsonOK(c, "OK", dto.AvailabilityResponse{
		RoomID:            av.RoomID.String(),
		Occupancy:         av.Occupancy,
		IsAvailable:       av.IsAvailable,
		RemainingCapacity: av.RemainingCapacity,
	})
}
