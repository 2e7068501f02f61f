package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentModel: berkas milik satu penghuni (foto / dokumen).
// Ikut terhapus saat penghuninya dihapus.
type DocumentModel struct {
	DocumentID uuid.UUID `gorm:"column:document_id;type:uuid;primaryKey" json:"document_id"`

	DocumentResidentID uuid.UUID `gorm:"column:document_resident_id;type:uuid;not null;index" json:"document_resident_id"`

	DocumentFilename string `gorm:"column:document_filename;type:varchar(255);not null" json:"document_filename"`
	DocumentKey      string `gorm:"column:document_key;type:text;not null" json:"document_key"`
	DocumentURL      string `gorm:"column:document_url;type:text;not null" json:"document_url"`
	DocumentType     string `gorm:"column:document_type;type:varchar(10);not null" json:"document_type"` // photo / document

	DocumentCreatedAt time.Time `gorm:"column:document_created_at;autoCreateTime" json:"document_created_at"`
}

func (DocumentModel) TableName() string { return "resident_documents" }

func (m *DocumentModel) BeforeCreate(tx *gorm.DB) error {
	if m.DocumentID == uuid.Nil {
		m.DocumentID = uuid.New()
	}
	return nil
}
