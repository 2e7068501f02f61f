package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Constants ===================== */

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

// Status lifecycle penghuni
const (
	ResidentStatusNew    = "NEW"
	ResidentStatusActive = "ACTIVE"
	ResidentStatusAlumni = "ALUMNI"
)

// Jenjang pendidikan
const (
	EducationSD          = "SD"
	EducationSMP         = "SMP"
	EducationSMA         = "SMA"
	EducationSMK         = "SMK"
	EducationKuliah      = "KULIAH"
	EducationTidakSekolah = "TIDAK_SEKOLAH"
)

// Jenis bantuan
const (
	AssistanceYatim      = "YATIM"
	AssistancePiatu      = "PIATU"
	AssistanceYatimPiatu = "YATIM_PIATU"
	AssistanceDhuafa     = "DHUAFA"
	AssistanceLainnya    = "LAINNYA"
)

/* ===================== Model ===================== */

type ResidentModel struct {
	ResidentID uuid.UUID `gorm:"column:resident_id;type:uuid;primaryKey" json:"resident_id"`

	// Identitas
	ResidentName       string         `gorm:"column:resident_name;type:varchar(100);not null" json:"resident_name"`
	ResidentNIK        string         `gorm:"column:resident_nik;type:varchar(16);not null;uniqueIndex" json:"resident_nik"`
	ResidentBirthplace *string        `gorm:"column:resident_birthplace;type:varchar(100)" json:"resident_birthplace,omitempty"`
	ResidentBirthdate  *datatypes.Date `gorm:"column:resident_birthdate" json:"resident_birthdate,omitempty"`
	ResidentGender     string         `gorm:"column:resident_gender;type:varchar(10);not null" json:"resident_gender"` // MALE / FEMALE
	ResidentAddress    *string        `gorm:"column:resident_address;type:text" json:"resident_address,omitempty"`
	ResidentPhone      *string        `gorm:"column:resident_phone;type:varchar(20)" json:"resident_phone,omitempty"`

	// Pendidikan
	ResidentEducation *string `gorm:"column:resident_education;type:varchar(20)" json:"resident_education,omitempty"`
	ResidentSchool    *string `gorm:"column:resident_school;type:varchar(100)" json:"resident_school,omitempty"`
	ResidentGrade     *string `gorm:"column:resident_grade;type:varchar(20)" json:"resident_grade,omitempty"`
	ResidentMajor     *string `gorm:"column:resident_major;type:varchar(50)" json:"resident_major,omitempty"`

	// Bantuan + catatan
	ResidentAssistance *string `gorm:"column:resident_assistance;type:varchar(20)" json:"resident_assistance,omitempty"`
	ResidentDetails    *string `gorm:"column:resident_details;type:text" json:"resident_details,omitempty"`

	// Lifecycle: ALUMNI wajib punya exit date + catatan alumni,
	// status lain wajib null dua-duanya
	ResidentStatus      string          `gorm:"column:resident_status;type:varchar(10);not null;default:'NEW'" json:"resident_status"`
	ResidentExitDate    *datatypes.Date `gorm:"column:resident_exit_date" json:"resident_exit_date,omitempty"`
	ResidentAlumniNotes *string         `gorm:"column:resident_alumni_notes;type:text" json:"resident_alumni_notes,omitempty"`

	// FK kamar
	ResidentRoomID *uuid.UUID `gorm:"column:resident_room_id;type:uuid;index" json:"resident_room_id,omitempty"`

	ResidentCreatedAt time.Time  `gorm:"column:resident_created_at;autoCreateTime" json:"resident_created_at"`
	ResidentUpdatedAt *time.Time `gorm:"column:resident_updated_at;autoUpdateTime" json:"resident_updated_at,omitempty"`

	// Relasi
	Documents []DocumentModel `gorm:"foreignKey:DocumentResidentID;references:ResidentID" json:"documents,omitempty"`
}

func (ResidentModel) TableName() string { return "residents" }

func (m *ResidentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ResidentID == uuid.Nil {
		m.ResidentID = uuid.New()
	}
	return nil
}
