package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"hoh_backend/internals/configs"
)

/*
FileStorage adalah facade upload/hapus yang seragam untuk service layer.

Kontrak penting:
  - Store mengembalikan objectKey (disimpan di DB) + URL publik.
  - Delete harus toleran terhadap key yang tidak pernah ada / sudah dihapus
    (tidak boleh error) — dipakai untuk best-effort cleanup saat hapus penghuni.
*/
type FileStorage interface {
	Store(ctx context.Context, dir string, fh *multipart.FileHeader) (StoredFile, error)
	Delete(ctx context.Context, keyOrURL string) error
}

type StoredFile struct {
	Filename    string
	Key         string
	URL         string
	ContentType string
}

// NewFromEnv memilih backend dari FILE_STORAGE_DRIVER: "oss" atau "disk".
func NewFromEnv() (FileStorage, error) {
	driver := strings.ToLower(configs.GetEnv("FILE_STORAGE_DRIVER", "disk"))
	switch driver {
	case "oss":
		return NewOSSStorageFromEnv("uploads")
	case "disk":
		return NewDiskStorageFromEnv()
	default:
		return nil, fmt.Errorf("FILE_STORAGE_DRIVER tidak dikenal: %s", driver)
	}
}
