package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "hoh_backend/internals/features/housing/resident/model"
)

const dateLayout = "2006-01-02"

// ParseDate menerima "YYYY-MM-DD"
func ParseDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("format tanggal harus YYYY-MM-DD: %s", s)
	}
	d := datatypes.Date(t)
	return &d, nil
}

/* ===================== Requests ===================== */

type CreateResidentRequest struct {
	ResidentName       string  `json:"resident_name" form:"resident_name" validate:"required,max=100"`
	ResidentNIK        string  `json:"resident_nik" form:"resident_nik" validate:"required,len=16,numeric"`
	ResidentBirthplace *string `json:"resident_birthplace" form:"resident_birthplace"`
	ResidentBirthdate  string  `json:"resident_birthdate" form:"resident_birthdate" validate:"omitempty,datetime=2006-01-02"`
	ResidentGender     string  `json:"resident_gender" form:"resident_gender" validate:"required,oneof=MALE FEMALE"`
	ResidentAddress    *string `json:"resident_address" form:"resident_address"`
	ResidentPhone      *string `json:"resident_phone" form:"resident_phone" validate:"omitempty,max=20"`

	ResidentEducation *string `json:"resident_education" form:"resident_education" validate:"omitempty,oneof=SD SMP SMA SMK KULIAH TIDAK_SEKOLAH"`
	ResidentSchool    *string `json:"resident_school" form:"resident_school"`
	ResidentGrade     *string `json:"resident_grade" form:"resident_grade"`
	ResidentMajor     *string `json:"resident_major" form:"resident_major"`

	ResidentAssistance *string `json:"resident_assistance" form:"resident_assistance" validate:"omitempty,oneof=YATIM PIATU YATIM_PIATU DHUAFA LAINNYA"`
	ResidentDetails    *string `json:"resident_details" form:"resident_details"`

	ResidentStatus      string  `json:"resident_status" form:"resident_status" validate:"omitempty,oneof=NEW ACTIVE ALUMNI"`
	ResidentExitDate    string  `json:"resident_exit_date" form:"resident_exit_date" validate:"omitempty,datetime=2006-01-02"`
	ResidentAlumniNotes *string `json:"resident_alumni_notes" form:"resident_alumni_notes"`

	ResidentRoomID *uuid.UUID `json:"resident_room_id" form:"resident_room_id"`
}

func (r CreateResidentRequest) ToModel() (*model.ResidentModel, error) {
	birthdate, err := ParseDate(r.ResidentBirthdate)
	if err != nil {
		return nil, err
	}
	exitDate, err := ParseDate(r.ResidentExitDate)
	if err != nil {
		return nil, err
	}

	status := r.ResidentStatus
	if status == "" {
		status = model.ResidentStatusNew
	}

	return &model.ResidentModel{
		ResidentName:        r.ResidentName,
		ResidentNIK:         r.ResidentNIK,
		ResidentBirthplace:  r.ResidentBirthplace,
		ResidentBirthdate:   birthdate,
		ResidentGender:      r.ResidentGender,
		ResidentAddress:     r.ResidentAddress,
		ResidentPhone:       r.ResidentPhone,
		ResidentEducation:   r.ResidentEducation,
		ResidentSchool:      r.ResidentSchool,
		ResidentGrade:       r.ResidentGrade,
		ResidentMajor:       r.ResidentMajor,
		ResidentAssistance:  r.ResidentAssistance,
		ResidentDetails:     r.ResidentDetails,
		ResidentStatus:      status,
		ResidentExitDate:    exitDate,
		ResidentAlumniNotes: r.ResidentAlumniNotes,
		ResidentRoomID:      r.ResidentRoomID,
	}, nil
}

// Partial patch: hanya field non-nil yang diubah.
// String kosong pada *string berarti "set jadi null" untuk kolom opsional
// lifecycle (exit date / alumni notes / room).
type UpdateResidentRequest struct {
	ResidentName       *string `json:"resident_name" form:"resident_name" validate:"omitempty,max=100"`
	ResidentNIK        *string `json:"resident_nik" form:"resident_nik" validate:"omitempty,len=16,numeric"`
	ResidentBirthplace *string `json:"resident_birthplace" form:"resident_birthplace"`
	ResidentBirthdate  *string `json:"resident_birthdate" form:"resident_birthdate" validate:"omitempty,datetime=2006-01-02"`
	ResidentGender     *string `json:"resident_gender" form:"resident_gender" validate:"omitempty,oneof=MALE FEMALE"`
	ResidentAddress    *string `json:"resident_address" form:"resident_address"`
	ResidentPhone      *string `json:"resident_phone" form:"resident_phone" validate:"omitempty,max=20"`

	ResidentEducation *string `json:"resident_education" form:"resident_education" validate:"omitempty,oneof=SD SMP SMA SMK KULIAH TIDAK_SEKOLAH"`
	ResidentSchool    *string `json:"resident_school" form:"resident_school"`
	ResidentGrade     *string `json:"resident_grade" form:"resident_grade"`
	ResidentMajor     *string `json:"resident_major" form:"resident_major"`

	ResidentAssistance *string `json:"resident_assistance" form:"resident_assistance" validate:"omitempty,oneof=YATIM PIATU YATIM_PIATU DHUAFA LAINNYA"`
	ResidentDetails    *string `json:"resident_details" form:"resident_details"`

	ResidentStatus      *string `json:"resident_status" form:"resident_status" validate:"omitempty,oneof=NEW ACTIVE ALUMNI"`
	ResidentExitDate    *string `json:"resident_exit_date" form:"resident_exit_date" validate:"omitempty,datetime=2006-01-02"`
	ResidentAlumniNotes *string `json:"resident_alumni_notes" form:"resident_alumni_notes"`

	ResidentRoomID *uuid.UUID `json:"resident_room_id" form:"resident_room_id"`
	// true = lepas dari kamar (set room jadi null)
	ClearRoom bool `json:"clear_room" form:"clear_room"`
}
