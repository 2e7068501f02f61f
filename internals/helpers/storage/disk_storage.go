package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hoh_backend/internals/configs"
	"hoh_backend/internals/constants"
)

// DiskStorage menyimpan file di disk lokal. Dipakai untuk development /
// deployment kecil tanpa object storage.
type DiskStorage struct {
	BaseDir string
	BaseURL string // prefix URL publik, mis. "/uploads"
}

func NewDiskStorageFromEnv() (*DiskStorage, error) {
	baseDir := configs.GetEnv("FILE_STORAGE_DIR", "./uploads")
	baseURL := configs.GetEnv("FILE_STORAGE_BASE_URL", "/uploads")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", baseDir, err)
	}
	return &DiskStorage{
		BaseDir: baseDir,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *DiskStorage) Store(ctx context.Context, dir string, fh *multipart.FileHeader) (StoredFile, error) {
	if fh == nil {
		return StoredFile{}, fmt.Errorf("nil file header")
	}

	src, err := fh.Open()
	if err != nil {
		return StoredFile{}, fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	filename := fh.Filename
	ct, reader, err := detectContentType(src, filename)
	if err != nil {
		return StoredFile{}, err
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		return StoredFile{}, fmt.Errorf("read file: %w", err)
	}

	if constants.IsImageExt(filename) {
		if webpBytes, werr := EncodeWebP(raw); werr == nil {
			raw = webpBytes
			ct = "image/webp"
			filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".webp"
		} else {
			log.Printf("[WARN] konversi webp gagal (%s): %v", filename, werr)
		}
	}

	dir = strings.Trim(dir, "/")
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, ext)
	if base == "" {
		base = "file"
	}
	name := fmt.Sprintf("%s_%s_%s%s", slugify(base), time.Now().Format("20060102_150405"), randHex(3), ext)
	key := filepath.ToSlash(filepath.Join(dir, name))

	fullPath := filepath.Join(s.BaseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return StoredFile{}, fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(fullPath, raw, 0o644); err != nil {
		return StoredFile{}, fmt.Errorf("write file: %w", err)
	}

	return StoredFile{
		Filename:    fh.Filename,
		Key:         key,
		URL:         s.BaseURL + "/" + key,
		ContentType: ct,
	}, nil
}

// Delete menghapus file lokal; file yang sudah tidak ada dianggap sukses.
func (s *DiskStorage) Delete(ctx context.Context, keyOrURL string) error {
	key := strings.TrimSpace(keyOrURL)
	if key == "" {
		return nil
	}
	key = strings.TrimPrefix(key, s.BaseURL+"/")
	fullPath := filepath.Join(s.BaseDir, filepath.FromSlash(key))

	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
