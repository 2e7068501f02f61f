package constants

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectDocumentType(t *testing.T) {
	require.Equal(t, DocumentTypePhoto, DetectDocumentType("foto.JPG"))
	require.Equal(t, DocumentTypePhoto, DetectDocumentType("profil.webp"))
	require.Equal(t, DocumentTypeDocument, DetectDocumentType("kartu-keluarga.pdf"))
	require.Equal(t, DocumentTypeDocument, DetectDocumentType("tanpa_ekstensi"))
}
