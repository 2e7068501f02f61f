// helpers/token.go
package helper

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const AccessTokenTTL = 24 * time.Hour

// CreateAccessToken membuat JWT access token (HS256) berisi id, nama, role.
func CreateAccessToken(secret string, userID uuid.UUID, userName, role string) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret kosong")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"id":        userID.String(),
		"user_name": userName,
		"role":      role,
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GetUserIDFromLocals mengambil user_id yang diset AuthMiddleware.
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	v, ok := c.Locals("user_id").(string)
	if !ok || v == "" {
		return uuid.Nil, errors.New("user_id tidak ada di context")
	}
	return uuid.Parse(v)
}
