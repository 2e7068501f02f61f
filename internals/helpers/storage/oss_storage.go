package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"hoh_backend/internals/constants"
)

// OSSStorage menyimpan file ke Aliyun OSS. Foto di-reencode ke WebP
// sebelum upload supaya hemat bandwidth.
type OSSStorage struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string
}

func NewOSSStorageFromEnv(prefix string) (*OSSStorage, error) {
	endpoint := strings.TrimSpace(os.Getenv("ALI_OSS_ENDPOINT"))
	ak := strings.TrimSpace(os.Getenv("ALI_OSS_ACCESS_KEY"))
	sk := strings.TrimSpace(os.Getenv("ALI_OSS_SECRET_KEY"))
	bucketName := strings.TrimSpace(os.Getenv("ALI_OSS_BUCKET"))
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	client, err := oss.New(endpoint, ak, sk)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &OSSStorage{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

func (s *OSSStorage) Store(ctx context.Context, dir string, fh *multipart.FileHeader) (StoredFile, error) {
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

	// foto → WebP (resize + reencode); file lain diupload apa adanya
	if constants.IsImageExt(filename) {
		raw, rerr := io.ReadAll(reader)
		if rerr != nil {
			return StoredFile{}, fmt.Errorf("read file: %w", rerr)
		}
		if webpBytes, werr := EncodeWebP(raw); werr == nil {
			reader = bytes.NewReader(webpBytes)
			ct = "image/webp"
			filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".webp"
		} else {
			// gagal decode? upload apa adanya saja
			log.Printf("[WARN] konversi webp gagal (%s): %v", filename, werr)
			reader = bytes.NewReader(raw)
		}
	}

	key := s.buildObjectKey(dir, filename)

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(ct),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, reader, opts...); err != nil {
		return StoredFile{}, fmt.Errorf("oss put: %w", err)
	}

	return StoredFile{
		Filename:    fh.Filename,
		Key:         key,
		URL:         s.PublicURL(key),
		ContentType: ct,
	}, nil
}

// Delete menghapus object berdasarkan key atau URL publik. OSS DeleteObject
// sukses untuk key yang tidak ada, jadi kontrak toleran sudah terpenuhi.
func (s *OSSStorage) Delete(ctx context.Context, keyOrURL string) error {
	key := s.extractKey(keyOrURL)
	if key == "" {
		return nil
	}
	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (s *OSSStorage) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if base := strings.TrimSpace(os.Getenv("ALI_OSS_PUBLIC_BASE")); base != "" {
		return strings.TrimRight(base, "/") + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

func (s *OSSStorage) buildObjectKey(dir, filename string) string {
	keyPrefix := s.Prefix
	if keyPrefix != "" {
		keyPrefix += "/"
	}
	dir = strings.Trim(dir, "/")
	if dir != "" {
		keyPrefix += dir + "/"
	}

	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, ext)
	if base == "" {
		base = "file"
	}
	ts := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s%s_%s_%s%s", keyPrefix, slugify(base), ts, randHex(3), ext)
}

func (s *OSSStorage) extractKey(keyOrURL string) string {
	keyOrURL = strings.TrimSpace(keyOrURL)
	if keyOrURL == "" {
		return ""
	}
	if !strings.Contains(keyOrURL, "://") {
		return keyOrURL
	}
	u, err := url.Parse(keyOrURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	r := strings.NewReplacer(" ", "-", "_", "-")
	s = r.Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "file"
	}
	return s
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func detectContentType(src multipart.File, filename string) (string, io.Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	ct := mime.TypeByExtension(ext)

	head := make([]byte, 512)
	n, _ := io.ReadFull(io.LimitReader(src, 512), head)

	if n > 0 {
		detected := http.DetectContentType(head[:n])
		if ct == "" || ct == "application/octet-stream" {
			ct = detected
		}
	}
	if ext == ".webp" {
		ct = "image/webp"
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return "", nil, err
		}
		return ct, src, nil
	}
	combined := append([]byte{}, head[:n]...)
	body, _ := io.ReadAll(src)
	combined = append(combined, body...)
	return ct, bytes.NewReader(combined), nil
}
