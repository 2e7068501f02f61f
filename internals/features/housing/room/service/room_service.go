package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hoh_backend/internals/apperr"
	residentModel "hoh_backend/internals/features/housing/resident/model"
	roomModel "hoh_backend/internals/features/housing/room/model"
)

// Availability: potret okupansi satu kamar (read-only)
type Availability struct {
	RoomID            uuid.UUID
	Occupancy         int64
	IsAvailable       bool
	RemainingCapacity int64
}

// RoomService menjaga invariant kapasitas:
//   - occupancy tidak boleh melebihi capacity
//   - kamar berpenghuni tidak boleh dihapus
//   - capacity tidak boleh diturunkan di bawah occupancy
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

/* ======================= CREATE ======================= */

func (s *RoomService) Create(ctx context.Context, m *roomModel.RoomModel) error {
	if m.RoomCapacity < 1 {
		return apperr.Constraint("kapasitas kamar minimal 1")
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		if apperr.IsUniqueViolation(err) {
			return apperr.Constraint("nomor kamar sudah dipakai")
		}
		return err
	}
	return nil
}

/* ======================= UPDATE (partial) ======================= */

func (s *RoomService) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*roomModel.RoomModel, error) {
	if len(updates) == 0 {
		return s.GetByID(ctx, id)
	}

	var room roomModel.RoomModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}

		// kapasitas baru tidak boleh lebih kecil dari jumlah penghuni sekarang
		if capRaw, ok := updates["room_capacity"]; ok {
			newCap, ok := capRaw.(int)
			if !ok || newCap < 1 {
				return apperr.Constraint("kapasitas kamar minimal 1")
			}
			occ, err := CountOccupants(tx, id)
			if err != nil {
				return err
			}
			if int64(newCap) < occ {
				return apperr.Constraint("kapasitas baru tidak boleh lebih kecil dari jumlah penghuni saat ini")
			}
		}

		if err := tx.Model(&room).Updates(updates).Error; err != nil {
			if apperr.IsUniqueViolation(err) {
				return apperr.Constraint("nomor kamar sudah dipakai")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

/* ======================= DELETE ======================= */

func (s *RoomService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room roomModel.RoomModel
		if err := tx.Where("room_id = ?", id).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}

		occ, err := CountOccupants(tx, id)
		if err != nil {
			return err
		}
		if occ > 0 {
			return apperr.Constraint("kamar masih dihuni, pindahkan penghuni dulu sebelum menghapus")
		}

		return tx.Delete(&room).Error
	})
}

/* ======================= READ ======================= */

func (s *RoomService) GetByID(ctx context.Context, id uuid.UUID) (*roomModel.RoomModel, error) {
	var room roomModel.RoomModel
	if err := s.DB.WithContext(ctx).Where("room_id = ?", id).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

// CheckAvailability: occupancy, is_available, remaining capacity. Read-only.
func (s *RoomService) CheckAvailability(ctx context.Context, id uuid.UUID) (Availability, error) {
	var room roomModel.RoomModel
	if err := s.DB.WithContext(ctx).Where("room_id = ?", id).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Availability{}, apperr.ErrNotFound
		}
		return Availability{}, err
	}

	occ, err := CountOccupants(s.DB.WithContext(ctx), id)
	if err != nil {
		return Availability{}, err
	}

	remaining := int64(room.RoomCapacity) - occ
	if remaining < 0 {
		remaining = 0
	}
	return Availability{
		RoomID:            room.RoomID,
		Occupancy:         occ,
		IsAvailable:       occ < int64(room.RoomCapacity),
		RemainingCapacity: remaining,
	}, nil
}

// CountOccupants dihitung dari tabel residents (bukan kolom counter),
// dipakai juga oleh resident service di dalam transaksi yang sama.
func CountOccupants(tx *gorm.DB, roomID uuid.UUID) (int64, error) {
	var count int64
	err := tx.Model(&residentModel.ResidentModel{}).
		Where("resident_room_id = ?", roomID).
		Count(&count).Error
	return count, err
}
