package service

import (
	"context"
	"errors"
	"log"
	"mime/multipart"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hoh_backend/internals/apperr"
	"hoh_backend/internals/constants"
	"hoh_backend/internals/features/housing/resident/dto"
	model "hoh_backend/internals/features/housing/resident/model"
	roomModel "hoh_backend/internals/features/housing/room/model"
	"hoh_backend/internals/helpers/storage"
)

type ResidentService struct {
	DB      *gorm.DB
	Storage storage.FileStorage
}

func NewResidentService(db *gorm.DB, store storage.FileStorage) *ResidentService {
	return &ResidentService{DB: db, Storage: store}
}

const uploadDir = "residents"

/* ===================== Create ===================== */

func (s *ResidentService) Create(ctx context.Context, m *model.ResidentModel, files []*multipart.FileHeader) error {
	if err := validateLifecycle(m.ResidentStatus, m.ResidentExitDate, m.ResidentAlumniNotes); err != nil {
		return err
	}

	// Pre-check NIK supaya pesan errornya ramah; unique index tetap jadi backstop.
	var count int64
	if err := s.DB.WithContext(ctx).Model(&model.ResidentModel{}).
		Where("resident_nik = ?", m.ResidentNIK).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.ErrDuplicateIdentity
	}

	stored, err := s.storeFiles(ctx, files)
	if err != nil {
		return err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.ResidentRoomID != nil {
			if err := checkRoomCapacity(tx, *m.ResidentRoomID, nil); err != nil {
				return err
			}
		}
		m.Documents = buildDocuments(stored)
		if err := tx.Create(m).Error; err != nil {
			if apperr.IsUniqueViolation(err) {
				return apperr.ErrDuplicateIdentity
			}
			return err
		}
		return nil
	})
	if err != nil {
		s.cleanupFiles(ctx, stored)
		return err
	}
	return nil
}

/* ===================== Update ===================== */

func (s *ResidentService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateResidentRequest, files []*multipart.FileHeader) (*model.ResidentModel, error) {
	stored, err := s.storeFiles(ctx, files)
	if err != nil {
		return nil, err
	}

	var resident model.ResidentModel
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&resident, "resident_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}

		if req.ResidentNIK != nil && *req.ResidentNIK != resident.ResidentNIK {
			var count int64
			if err := tx.Model(&model.ResidentModel{}).
				Where("resident_nik = ? AND resident_id <> ?", *req.ResidentNIK, id).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return apperr.ErrDuplicateIdentity
			}
			resident.ResidentNIK = *req.ResidentNIK
		}

		applyScalarPatch(&resident, req)

		if err := applyLifecyclePatch(&resident, req); err != nil {
			return err
		}

		if req.ClearRoom {
			resident.ResidentRoomID = nil
		} else if req.ResidentRoomID != nil {
			sameRoom := resident.ResidentRoomID != nil && *resident.ResidentRoomID == *req.ResidentRoomID
			if !sameRoom {
				if err := checkRoomCapacity(tx, *req.ResidentRoomID, &id); err != nil {
					return err
				}
				resident.ResidentRoomID = req.ResidentRoomID
			}
		}

		if err := tx.Save(&resident).Error; err != nil {
			if apperr.IsUniqueViolation(err) {
				return apperr.ErrDuplicateIdentity
			}
			return err
		}

		docs := buildDocuments(stored)
		for i := range docs {
			docs[i].DocumentResidentID = resident.ResidentID
		}
		if len(docs) > 0 {
			if err := tx.Create(&docs).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.cleanupFiles(ctx, stored)
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Preload("Documents").
		First(&resident, "resident_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resident, nil
}

/* ===================== Read ===================== */

func (s *ResidentService) GetByID(ctx context.Context, id uuid.UUID) (*model.ResidentModel, error) {
	var resident model.ResidentModel
	if err := s.DB.WithContext(ctx).Preload("Documents").
		First(&resident, "resident_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &resident, nil
}

/* ===================== Delete ===================== */

// Delete menghapus penghuni beserta dokumennya. File di storage dihapus
// best-effort: kegagalan dicatat tapi tidak membatalkan penghapusan data.
func (s *ResidentService) Delete(ctx context.Context, id uuid.UUID) error {
	var resident model.ResidentModel
	if err := s.DB.WithContext(ctx).Preload("Documents").
		First(&resident, "resident_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}

	for _, doc := range resident.Documents {
		if err := s.Storage.Delete(ctx, doc.DocumentKey); err != nil {
			log.Printf("[WARN] ⚠️ Gagal hapus file %s: %v (lanjut hapus data)", doc.DocumentKey, err)
		}
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_resident_id = ?", id).
			Delete(&model.DocumentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ResidentModel{}, "resident_id = ?", id).Error
	})
}

/* ===================== Documents ===================== */

func (s *ResidentService) DeleteDocument(ctx context.Context, residentID, documentID uuid.UUID) error {
	var doc model.DocumentModel
	if err := s.DB.WithContext(ctx).
		First(&doc, "document_id = ? AND document_resident_id = ?", documentID, residentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	if err := s.Storage.Delete(ctx, doc.DocumentKey); err != nil {
		log.Printf("[WARN] ⚠️ Gagal hapus file %s: %v (lanjut hapus data)", doc.DocumentKey, err)
	}
	return s.DB.WithContext(ctx).Delete(&model.DocumentModel{}, "document_id = ?", documentID).Error
}

/* ===================== Internals ===================== */

func validateLifecycle(status string, exitDate *datatypes.Date, notes *string) error {
	if status == model.ResidentStatusAlumni {
		if exitDate == nil || notes == nil {
			return apperr.Constraint("status ALUMNI wajib menyertakan tanggal keluar dan catatan alumni")
		}
		return nil
	}
	if exitDate != nil || notes != nil {
		return apperr.Constraint("tanggal keluar dan catatan alumni hanya untuk status ALUMNI")
	}
	return nil
}

func applyScalarPatch(m *model.ResidentModel, req dto.UpdateResidentRequest) {
	if req.ResidentName != nil {
		m.ResidentName = *req.ResidentName
	}
	if req.ResidentBirthplace != nil {
		m.ResidentBirthplace = req.ResidentBirthplace
	}
	if req.ResidentGender != nil {
		m.ResidentGender = *req.ResidentGender
	}
	if req.ResidentAddress != nil {
		m.ResidentAddress = req.ResidentAddress
	}
	if req.ResidentPhone != nil {
		m.ResidentPhone = req.ResidentPhone
	}
	if req.ResidentEducation != nil {
		m.ResidentEducation = req.ResidentEducation
	}
	if req.ResidentSchool != nil {
		m.ResidentSchool = req.ResidentSchool
	}
	if req.ResidentGrade != nil {
		m.ResidentGrade = req.ResidentGrade
	}
	if req.ResidentMajor != nil {
		m.ResidentMajor = req.ResidentMajor
	}
	if req.ResidentAssistance != nil {
		m.ResidentAssistance = req.ResidentAssistance
	}
	if req.ResidentDetails != nil {
		m.ResidentDetails = req.ResidentDetails
	}
	if req.ResidentBirthdate != nil {
		if d, err := dto.ParseDate(*req.ResidentBirthdate); err == nil {
			m.ResidentBirthdate = d
		}
	}
}

// applyLifecyclePatch menjaga aturan status:
// ALUMNI wajib punya tanggal keluar + catatan alumni; status lain wajib kosong.
func applyLifecyclePatch(m *model.ResidentModel, req dto.UpdateResidentRequest) error {
	if req.ResidentStatus != nil {
		m.ResidentStatus = *req.ResidentStatus
	}
	if req.ResidentExitDate != nil {
		d, err := dto.ParseDate(*req.ResidentExitDate)
		if err != nil {
			return apperr.Constraint(err.Error())
		}
		m.ResidentExitDate = d
	}
	if req.ResidentAlumniNotes != nil {
		if *req.ResidentAlumniNotes == "" {
			m.ResidentAlumniNotes = nil
		} else {
			m.ResidentAlumniNotes = req.ResidentAlumniNotes
		}
	}

	if m.ResidentStatus == model.ResidentStatusAlumni {
		if m.ResidentExitDate == nil || m.ResidentAlumniNotes == nil {
			return apperr.Constraint("status ALUMNI wajib menyertakan tanggal keluar dan catatan alumni")
		}
		return nil
	}

	// Status bukan ALUMNI: kiriman eksplisit field lifecycle ditolak,
	// nilai lama (sisa status ALUMNI sebelumnya) dinolkan.
	if req.ResidentExitDate != nil || (req.ResidentAlumniNotes != nil && *req.ResidentAlumniNotes != "") {
		return apperr.Constraint("tanggal keluar dan catatan alumni hanya untuk status ALUMNI")
	}
	m.ResidentExitDate = nil
	m.ResidentAlumniNotes = nil
	return nil
}

func checkRoomCapacity(tx *gorm.DB, roomID uuid.UUID, excludeResident *uuid.UUID) error {
	var room roomModel.RoomModel
	if err := tx.First(&room, "room_id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Constraint("kamar tidak ditemukan")
		}
		return err
	}

	q := tx.Model(&model.ResidentModel{}).Where("resident_room_id = ?", roomID)
	if excludeResident != nil {
		q = q.Where("resident_id <> ?", *excludeResident)
	}
	var occupied int64
	if err := q.Count(&occupied).Error; err != nil {
		return err
	}
	if occupied >= int64(room.RoomCapacity) {
		return apperr.Constraint("kamar sudah penuh")
	}
	return nil
}

func (s *ResidentService) storeFiles(ctx context.Context, files []*multipart.FileHeader) ([]storage.StoredFile, error) {
	stored := make([]storage.StoredFile, 0, len(files))
	for _, fh := range files {
		sf, err := s.Storage.Store(ctx, uploadDir, fh)
		if err != nil {
			s.cleanupFiles(ctx, stored)
			return nil, err
		}
		stored = append(stored, sf)
	}
	return stored, nil
}

func (s *ResidentService) cleanupFiles(ctx context.Context, stored []storage.StoredFile) {
	for _, sf := range stored {
		if err := s.Storage.Delete(ctx, sf.Key); err != nil {
			log.Printf("[WARN] ⚠️ Gagal bersihkan file %s: %v", sf.Key, err)
		}
	}
}

func buildDocuments(stored []storage.StoredFile) []model.DocumentModel {
	docs := make([]model.DocumentModel, 0, len(stored))
	for _, sf := range stored {
		docs = append(docs, model.DocumentModel{
			DocumentFilename: sf.Filename,
			DocumentKey:      sf.Key,
			DocumentURL:      sf.URL,
			DocumentType:     constants.DetectDocumentType(sf.Filename),
		})
	}
	return docs
}
