package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hoh_backend/internals/apperr"
	"hoh_backend/internals/features/housing/resident/dto"
	model "hoh_backend/internals/features/housing/resident/model"
	roomModel "hoh_backend/internals/features/housing/room/model"
	"hoh_backend/internals/helpers/storage"
)

// fakeStorage mencatat key yang dihapus; Delete bisa dipaksa gagal.
type fakeStorage struct {
	deleted   []string
	deleteErr error
}

func (f *fakeStorage) Store(ctx context.Context, dir string, fh *multipart.FileHeader) (storage.StoredFile, error) {
	return storage.StoredFile{
		Filename: fh.Filename,
		Key:      dir + "/" + fh.Filename,
		URL:      "https://cdn.test/" + dir + "/" + fh.Filename,
	}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, keyOrURL string) error {
	f.deleted = append(f.deleted, keyOrURL)
	return f.deleteErr
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:resident_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&roomModel.RoomModel{},
		&model.ResidentModel{},
		&model.DocumentModel{},
	))
	return db
}

func newService(t *testing.T, db *gorm.DB) (*ResidentService, *fakeStorage) {
	t.Helper()
	store := &fakeStorage{}
	return NewResidentService(db, store), store
}

func newResident(nik string) *model.ResidentModel {
	return &model.ResidentModel{
		ResidentName:   "Ahmad Fauzi",
		ResidentNIK:    nik,
		ResidentGender: model.GenderMale,
		ResidentStatus: model.ResidentStatusNew,
	}
}

func strPtr(s string) *string { return &s }

func TestCreateResident_DuplicateNIK(t *testing.T) {
	db := setupDB(t)
	svc, _ := newService(t, db)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, newResident("3201010101010001"), nil))

	err := svc.Create(ctx, newResident("3201010101010001"), nil)
	require.True(t, errors.Is(err, apperr.ErrDuplicateIdentity))

	var count int64
	require.NoError(t, db.Model(&model.ResidentModel{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCreateResident_RoomFullRejected(t *testing.T) {
	db := setupDB(t)
	svc, _ := newService(t, db)
	ctx := context.Background()

	room := &roomModel.RoomModel{RoomNumber: "A-101", RoomType: roomModel.RoomTypePutra, RoomCapacity: 1, RoomFloor: 1}
	require.NoError(t, db.Create(room).Error)

	first := newResident("3201010101010002")
	first.ResidentRoomID = &room.RoomID
	require.NoError(t, svc.Create(ctx, first, nil))

	second := newResident("3201010101010003")
	second.ResidentRoomID = &room.RoomID
	err := svc.Create(ctx, second, nil)
	require.True(t, errors.Is(err, apperr.ErrConstraintViolation))

	var count int64
	require.NoError(t, db.Model(&model.ResidentModel{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCreateResident_AlumniNeedsExitDateAndNotes(t *testing.T) {
	db := setupDB(t)
	svc, _ := newService(t, db)
	ctx := context.Background()

	m := newResident("3201010101010004")
	m.ResidentStatus = model.ResidentStatusAlumni
	err := svc.Create(ctx, m, nil)
	require.True(t, errors.Is(err, apperr.ErrConstraintViolation))

	exit := datatypes.Date(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	m = newResident("3201010101010004")
	m.ResidentStatus = model.ResidentStatusAlumni
	m.ResidentExitDate = &exit
	m.ResidentAlumniNotes = strPtr("Lulus SMA, kembali ke keluarga")
	require.NoError(t, svc.Create(ctx, m, nil))
}

func TestCreateResident_ExitDateOnlyForAlumni(t *testing.T) {
	db := setupDB(t)
	svc, _ := newService(t, db)

	exit := datatypes.Date(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	m := newResident("3201010101010005")
	m.ResidentStatus = model.ResidentStatusActive
	m.ResidentExitDate = &exit
	err := svc.Create(context.Background(), m, nil)
	require.True(t, errors.Is(err, apperr.ErrConstraintViolation))
}

func TestUpdateResident_LifecycleTransitions(t *testing.T) {
	db := setupDB(t)
	svc, _ := newService(t, db)
	ctx := context.Background()

	m := newResident("3201010101010006")
	require.NoError(t, svc.Create(ctx, m, nil))

	// NEW → ALUMNI tanpa exit date ditolak
	_, err := svc.Update(ctx, m.ResidentID, dto.UpdateResidentRequest{
		ResidentStatus: strPtr(model.ResidentStatusAlumni),
	}, nil)
	require.True(t, errors.Is(err, apperr.ErrConstraintViolation))

	// NEW → ALUMNI lengkap
	updated, err := svc.Update(ctx, m.ResidentID, dto.UpdateResidentRequest{
		ResidentStatus:      strPtr(model.ResidentStatusAlumni),
		ResidentExitDate:    strPtr("2026-06-01"),
		ResidentAlumniNotes: strPtr("Diterima kerja"),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, model.ResidentStatusAlumni, updated.ResidentStatus)
	require.NotNil(t, updated.ResidentExitDate)
	require.NotNil(t, updated.ResidentAlumniNotes)

	// ALUMNI → ACTIVE menolkan field lifecycle
	updated, err = svc.Update(ctx, m.ResidentID, dto.UpdateResidentRequest{
		ResidentStatus: strPtr(model.ResidentStatusActive),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, model.ResidentStatusActive, updated.ResidentStatus)
	require.Nil(t, updated.ResidentExitDate)
	require.Nil(t, updated.ResidentAlumniNotes)
}

func TestUpdateResident_ExitDateOnlyForAlumni(t *testing.T) {
	db := setupDB(t)
	svc, _ := newService(t, db)
	ctx := context.Background()

	m := newResident("3201010101010011")
	m.ResidentStatus = model.ResidentStatusActive
	require.NoError(t, svc.Create(ctx, m, nil))

	// kiriman exit date untuk status non-ALUMNI ditolak (konsisten dengan Create)
	_, err := svc.Update(ctx, m.ResidentID, dto.UpdateResidentRequest{
		ResidentExitDate: strPtr("2026-06-01"),
	}, nil)
	require.True(t, errors.Is(err, apperr.ErrConstraintViolation))

	_, err = svc.Update(ctx, m.ResidentID, dto.UpdateResidentRequest{
		ResidentAlumniNotes: strPtr("catatan nyasar"),
	}, nil)
	require.True(t, errors.Is(err, apperr.ErrConstraintViolation))

	// data lama tidak berubah
	got, err := svc.GetByID(ctx, m.ResidentID)
	require.NoError(t, err)
	require.Equal(t, model.ResidentStatusActive, got.ResidentStatus)
	require.Nil(t, got.ResidentExitDate)
}

func TestUpdateResident_NIKDuplicateRejected(t *testing.T) {
	db := setupDB(t)
	svc, _ := newService(t, db)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, newResident("3201010101010007"), nil))
	other := newResident("3201010101010008")
	require.NoError(t, svc.Create(ctx, other, nil))

	_, err := svc.Update(ctx, other.ResidentID, dto.UpdateResidentRequest{
		ResidentNIK: strPtr("3201010101010007"),
	}, nil)
	require.True(t, errors.Is(err, apperr.ErrDuplicateIdentity))
}

func TestUpdateResident_MoveToFullRoomRejected(t *testing.T) {
	db := setupDB(t)
	svc, _ := newService(t, db)
	ctx := context.Background()

	full := &roomModel.RoomModel{RoomNumber: "A-101", RoomType: roomModel.RoomTypePutra, RoomCapacity: 1, RoomFloor: 1}
	require.NoError(t, db.Create(full).Error)

	occupant := newResident("3201010101010009")
	occupant.ResidentRoomID = &full.RoomID
	require.NoError(t, svc.Create(ctx, occupant, nil))

	mover := newResident("3201010101010010")
	require.NoError(t, svc.Create(ctx, mover, nil))

	_, err := svc.Update(ctx, mover.ResidentID, dto.UpdateResidentRequest{
		ResidentRoomID: &full.RoomID,
	}, nil)
	require.True(t, errors.Is(err, apperr.ErrConstraintViolation))

	// pindah "ke kamar yang sama" bukan pelanggaran kapasitas
	_, err = svc.Update(ctx, occupant.ResidentID, dto.UpdateResidentRequest{
		ResidentRoomID: &full.RoomID,
	}, nil)
	require.NoError(t, err)
}

func TestDeleteResident_CascadesEvenWhenFileDeleteFails(t *testing.T) {
	db := setupDB(t)
	svc, store := newService(t, db)
	ctx := context.Background()

	m := newResident("3201010101010011")
	require.NoError(t, svc.Create(ctx, m, nil))

	docs := []model.DocumentModel{
		{DocumentResidentID: m.ResidentID, DocumentFilename: "kk.pdf", DocumentKey: "residents/kk.pdf", DocumentURL: "https://cdn.test/residents/kk.pdf", DocumentType: "document"},
		{DocumentResidentID: m.ResidentID, DocumentFilename: "foto.webp", DocumentKey: "residents/foto.webp", DocumentURL: "https://cdn.test/residents/foto.webp", DocumentType: "photo"},
	}
	require.NoError(t, db.Create(&docs).Error)

	store.deleteErr = errors.New("oss timeout")
	require.NoError(t, svc.Delete(ctx, m.ResidentID))
	require.Len(t, store.deleted, 2)

	var residents, documents int64
	require.NoError(t, db.Model(&model.ResidentModel{}).Count(&residents).Error)
	require.NoError(t, db.Model(&model.DocumentModel{}).Count(&documents).Error)
	require.EqualValues(t, 0, residents)
	require.EqualValues(t, 0, documents)
}

func TestDeleteResident_NotFound(t *testing.T) {
	db := setupDB(t)
	svc, _ := newService(t, db)

	m := newResident("3201010101010012")
	require.NoError(t, svc.Create(context.Background(), m, nil))
	require.NoError(t, svc.Delete(context.Background(), m.ResidentID))

	err := svc.Delete(context.Background(), m.ResidentID)
	require.True(t, errors.Is(err, apperr.ErrNotFound))
}
