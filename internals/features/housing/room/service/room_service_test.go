package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hoh_backend/internals/apperr"
	residentModel "hoh_backend/internals/features/housing/resident/model"
	roomModel "hoh_backend/internals/features/housing/room/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&roomModel.RoomModel{},
		&residentModel.ResidentModel{},
		&residentModel.DocumentModel{},
	))
	return db
}

func makeRoom(t *testing.T, db *gorm.DB, number string, capacity int) *roomModel.RoomModel {
	t.Helper()
	room := &roomModel.RoomModel{
		RoomNumber:   number,
		RoomType:     roomModel.RoomTypePutra,
		RoomCapacity: capacity,
		RoomFloor:    1,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func TestCreateRoom_DuplicateNumber(t *testing.T) {
	db := setupDB(t)
	svc := NewRoomService(db)

	first := &roomModel.RoomModel{RoomNumber: "A-101", RoomType: roomModel.RoomTypePutra, RoomCapacity: 4, RoomFloor: 1}
	require.NoError(t, svc.Create(context.Background(), first))

	dup := &roomModel.RoomModel{RoomNumber: "A-101", RoomType: roomModel.RoomTypePutra, RoomCapacity: 2, RoomFloor: 1}
	err := svc.Create(context.Background(), dup)
	require.Error(t, err)
	require.True(t, errors.Is(err, apperr.ErrConstraintViolation))
}

func TestCreateRoom_CapacityMinimumOne(t *testing.T) {
	db := setupDB(t)
	svc := NewRoomService(db)

	err := svc.Create(context.Background(), &roomModel.RoomModel{
		RoomNumber: "A-102", RoomType: roomModel.RoomTypePutri, RoomCapacity: 0, RoomFloor: 1,
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, apperr.ErrConstraintViolation))
}

func TestUpdateRoom_CapacityBelowOccupancyRejected(t *testing.T) {
	db := setupDB(t)
	svc := NewRoomService(db)
	room := makeRoom(t, db, "B-201", 3)

	for i := 0; i < 2; i++ {
		resident := &residentModel.ResidentModel{
			ResidentName:   fmt.Sprintf("Penghuni %d", i+1),
			ResidentNIK:    fmt.Sprintf("320101010101%04d", i),
			ResidentGender: residentModel.GenderMale,
			ResidentStatus: residentModel.ResidentStatusActive,
			ResidentRoomID: &room.RoomID,
		}
		require.NoError(t, db.Create(resident).Error)
	}

	_, err := svc.Update(context.Background(), room.RoomID, map[string]interface{}{"room_capacity": 1})
	require.Error(t, err)
	require.True(t, errors.Is(err, apperr.ErrConstraintViolation))

	// turun ke 2 masih boleh: tidak lebih kecil dari jumlah penghuni
	updated, err := svc.Update(context.Background(), room.RoomID, map[string]interface{}{"room_capacity": 2})
	require.NoError(t, err)
	require.Equal(t, 2, updated.RoomCapacity)
}

func TestDeleteRoom_OccupiedRejected(t *testing.T) {
	db := setupDB(t)
	svc := NewRoomService(db)
	room := makeRoom(t, db, "B-202", 2)

	resident := &residentModel.ResidentModel{
		ResidentName:   "Penghuni Satu",
		ResidentNIK:    "3201010101010001",
		ResidentGender: residentModel.GenderFemale,
		ResidentStatus: residentModel.ResidentStatusActive,
		ResidentRoomID: &room.RoomID,
	}
	require.NoError(t, db.Create(resident).Error)

	err := svc.Delete(context.Background(), room.RoomID)
	require.Error(t, err)
	require.True(t, errors.Is(err, apperr.ErrConstraintViolation))

	// kamar kosong boleh dihapus
	require.NoError(t, db.Model(&residentModel.ResidentModel{}).
		Where("resident_id = ?", resident.ResidentID).
		Update("resident_room_id", nil).Error)
	require.NoError(t, svc.Delete(context.Background(), room.RoomID))

	_, err = svc.GetByID(context.Background(), room.RoomID)
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCheckAvailability(t *testing.T) {
	db := setupDB(t)
	svc := NewRoomService(db)
	room := makeRoom(t, db, "C-301", 2)

	avail, err := svc.CheckAvailability(context.Background(), room.RoomID)
	require.NoError(t, err)
	require.True(t, avail.IsAvailable)
	require.EqualValues(t, 0, avail.Occupancy)
	require.EqualValues(t, 2, avail.RemainingCapacity)

	resident := &residentModel.ResidentModel{
		ResidentName:   "Penghuni Satu",
		ResidentNIK:    "3201010101010002",
		ResidentGender: residentModel.GenderMale,
		ResidentStatus: residentModel.ResidentStatusActive,
		ResidentRoomID: &room.RoomID,
	}
	require.NoError(t, db.Create(resident).Error)

	avail, err = svc.CheckAvailability(context.Background(), room.RoomID)
	require.NoError(t, err)
	require.True(t, avail.IsAvailable)
	require.EqualValues(t, 1, avail.Occupancy)
	require.EqualValues(t, 1, avail.RemainingCapacity)
}
