package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Error domain yang dilempar service layer. Controller yang menerjemahkan
// ke status HTTP, service tidak perlu tahu soal fiber.
var (
	ErrNotFound            = errors.New("data tidak ditemukan")
	ErrDuplicateIdentity   = errors.New("NIK sudah terdaftar")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrUpstream            = errors.New("upstream failure")
)

// Constraint membungkus ErrConstraintViolation dengan pesan yang bisa
// ditampilkan ke user (mis. "kapasitas baru tidak boleh lebih kecil...").
func Constraint(msg string) error {
	return fmt.Errorf("%w: %s", ErrConstraintViolation, msg)
}

// Kode error PostgreSQL yang dipakai sebagai backstop.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation mengecek apakah err berasal dari unique constraint DB.
// Dipakai sebagai backstop race pada pre-check NIK/email.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	// driver lain (mis. sqlite saat test) tidak mengembalikan pq.Error
	return containsAny(err, "duplicate", "UNIQUE constraint failed", "unique")
}

func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgForeignKeyViolation
	}
	return containsAny(err, "foreign key", "FOREIGN KEY constraint failed")
}

func containsAny(err error, subs ...string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, s := range subs {
		if strings.Contains(msg, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// ToFiber menerjemahkan error domain menjadi fiber.Error dengan status
// yang sesuai. Error lain dianggap 500.
func ToFiber(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.NewError(fiber.StatusNotFound, msgOr(err, "Data tidak ditemukan"))
	case errors.Is(err, ErrDuplicateIdentity):
		return fiber.NewError(fiber.StatusConflict, msgOr(err, "Data duplikat"))
	case errors.Is(err, ErrConstraintViolation):
		return fiber.NewError(fiber.StatusBadRequest, msgOr(err, "Permintaan tidak valid"))
	case errors.Is(err, ErrUpstream):
		return fiber.NewError(fiber.StatusBadGateway, msgOr(err, "Layanan eksternal bermasalah"))
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func msgOr(err error, def string) string {
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return def
}
