package constants

import (
	"path/filepath"
	"strings"
)

// Tipe dokumen penghuni
const (
	DocumentTypePhoto    = "photo"
	DocumentTypeDocument = "document"
)

// DetectDocumentType menebak tipe dokumen dari ekstensi file upload.
// Foto (jpg/png/webp) → photo, sisanya dianggap dokumen biasa.
func DetectDocumentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return DocumentTypePhoto
	default:
		return DocumentTypeDocument
	}
}

func IsImageExt(filename string) bool {
	return DetectDocumentType(filename) == DocumentTypePhoto
}
