package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hoh_backend/internals/apperr"
	authDTO "hoh_backend/internals/features/users/auth/dto"
	authService "hoh_backend/internals/features/users/auth/service"
	helper "hoh_backend/internals/helpers"
)

var validate = validator.New()

type AuthController struct {
	Service *authService.AuthService
}

func NewAuthController(svc *authService.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

/* ======================= LOGIN ======================= */
// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	resp, err := h.Service.Login(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, authService.ErrInvalidCredentials) {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal login")
	}

	// cookie fallback untuk browser
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    resp.AccessToken,
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   int(helper.AccessTokenTTL.Seconds()),
	})

	return helper.JsonOK(c, "Login berhasil", resp)
}

/* ======================= REGISTER ======================= */
// POST /api/auth/register (ADMIN only)
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	user, err := h.Service.Register(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, apperr.ErrConstraintViolation) {
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}
	return helper.JsonCreated(c, "Akun berhasil dibuat", user)
}

/* ======================= ME ======================= */
// GET /api/auth/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user, err := h.Service.Me(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat profil")
	}
	return helper.JsonOK(c, "OK", user)
}

/* ======================= FORGOT PASSWORD ======================= */
// POST /api/auth/forgot-password
func (h *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var req authDTO.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	if err := h.Service.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses permintaan")
	}
	// selalu sukses, email hanya terkirim kalau akun terdaftar
	return helper.JsonOK(c, "Jika email terdaftar, link reset sudah dikirim", nil)
}

/* ======================= RESET PASSWORD ======================= */
// POST /api/auth/reset-password
func (h *AuthController) ResetPassword(c *fiber.Ctx) error {
	var req authDTO.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	if err := h.Service.ResetPassword(c.UserContext(), req); err != nil {
		if errors.Is(err, authService.ErrInvalidResetToken) {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal reset password")
	}
	return helper.JsonUpdated(c, "Password berhasil direset", nil)
}

/* ======================= CHANGE PASSWORD ======================= */
// POST /api/auth/change-password
func (h *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req authDTO.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	if err := h.Service.ChangePassword(c.UserContext(), userID, req); err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidCredentials):
			return helper.JsonError(c, fiber.StatusUnauthorized, "Password lama salah")
		case errors.Is(err, apperr.ErrNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengganti password")
		}
	}
	return helper.JsonUpdated(c, "Password berhasil diganti", nil)
}

/* ======================= LOGOUT ======================= */
// POST /api/auth/logout — hapus cookie, token stateless dibiarkan expire
func (h *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		MaxAge:   -1,
	})
	return helper.JsonOK(c, "Logout berhasil", nil)
}
