package dto

import (
	model "hoh_backend/internals/features/housing/room/model"
)

/* ===================== Requests ===================== */

type CreateRoomRequest struct {
	RoomNumber      string  `json:"room_number" validate:"required,max=20"`
	RoomType        string  `json:"room_type" validate:"required,oneof=PUTRA PUTRI"`
	RoomCapacity    int     `json:"room_capacity" validate:"required,min=1"`
	RoomFloor       int     `json:"room_floor" validate:"omitempty,min=0"`
	RoomDescription *string `json:"room_description"`
}

func (r CreateRoomRequest) ToModel() *model.RoomModel {
	floor := r.RoomFloor
	if floor == 0 {
		floor = 1
	}
	return &model.RoomModel{
		RoomNumber:      r.RoomNumber,
		RoomType:        r.RoomType,
		RoomCapacity:    r.RoomCapacity,
		RoomFloor:       floor,
		RoomDescription: r.RoomDescription,
	}
}

// Partial patch: hanya field non-nil yang diubah
type UpdateRoomRequest struct {
	RoomNumber      *string `json:"room_number" validate:"omitempty,max=20"`
	RoomType        *string `json:"room_type" validate:"omitempty,oneof=PUTRA PUTRI"`
	RoomCapacity    *int    `json:"room_capacity" validate:"omitempty,min=1"`
	RoomFloor       *int    `json:"room_floor" validate:"omitempty,min=0"`
	RoomDescription *string `json:"room_description"`
}

func (r UpdateRoomRequest) ToUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.RoomNumber != nil {
		updates["room_number"] = *r.RoomNumber
	}
	if r.RoomType != nil {
		updates["room_type"] = *r.RoomType
	}
	if r.RoomCapacity != nil {
		updates["room_capacity"] = *r.RoomCapacity
	}
	if r.RoomFloor != nil {
		updates["room_floor"] = *r.RoomFloor
	}
	if r.RoomDescription != nil {
		updates["room_description"] = *r.RoomDescription
	}
	return updates
}

/* ===================== Responses ===================== */

type AvailabilityResponse struct {
	RoomID            string `json:"room_id"`
	Occupancy         int64  `json:"occupancy"`
	IsAvailable       bool   `json:"is_available"`
	RemainingCapacity int64  `json:"remaining_capacity"`
}
