package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hoh_backend/internals/apperr"
	"hoh_backend/internals/configs"
	"hoh_backend/internals/constants"
	authDTO "hoh_backend/internals/features/users/auth/dto"
	authHelper "hoh_backend/internals/features/users/auth/helper"
	userModel "hoh_backend/internals/features/users/user/model"
	"hoh_backend/internals/features/notifications/mailer"
	helper "hoh_backend/internals/helpers"
)

var ErrInvalidCredentials = errors.New("email atau password salah")
var ErrInvalidResetToken = errors.New("token reset tidak valid atau sudah kadaluarsa")

const resetTokenTTL = 1 * time.Hour

type AuthService struct {
	DB         *gorm.DB
	Dispatcher *mailer.Dispatcher
}

func NewAuthService(db *gorm.DB, dispatcher *mailer.Dispatcher) *AuthService {
	return &AuthService{DB: db, Dispatcher: dispatcher}
}

/* ========================== LOGIN ========================== */

func (s *AuthService) Login(ctx context.Context, req authDTO.LoginRequest) (authDTO.LoginResponse, error) {
	var user userModel.UserModel
	if err := s.DB.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authDTO.LoginResponse{}, ErrInvalidCredentials
		}
		return authDTO.LoginResponse{}, err
	}
	if user.IsActive == nil || !*user.IsActive {
		return authDTO.LoginResponse{}, ErrInvalidCredentials
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.Password); err != nil {
		return authDTO.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := helper.CreateAccessToken(configs.JWTSecret, user.ID, user.UserName, user.Role)
	if err != nil {
		return authDTO.LoginResponse{}, fmt.Errorf("buat access token: %w", err)
	}

	return authDTO.LoginResponse{
		AccessToken: token,
		User:        authDTO.FromUserModel(user),
	}, nil
}

/* ========================== REGISTER ========================== */
// Register dipakai admin untuk membuat akun staff baru.
// Email welcome dikirim fire-and-forget.

func (s *AuthService) Register(ctx context.Context, req authDTO.RegisterRequest) (authDTO.UserResponse, error) {
	role := req.Role
	if role == "" {
		role = constants.RoleStaff
	}

	hashed, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return authDTO.UserResponse{}, fmt.Errorf("hash password: %w", err)
	}

	active := true
	user := userModel.UserModel{
		UserName: req.UserName,
		Email:    req.Email,
		Password: hashed,
		Role:     role,
		IsActive: &active,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if apperr.IsUniqueViolation(err) {
			return authDTO.UserResponse{}, apperr.Constraint("email sudah terdaftar")
		}
		return authDTO.UserResponse{}, err
	}

	s.Dispatcher.DispatchWelcome(ctx, user.Email, user.UserName)

	return authDTO.FromUserModel(user), nil
}

/* ========================== ME ========================== */

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (authDTO.UserResponse, error) {
	var user userModel.UserModel
	if err := s.DB.WithContext(ctx).Where("id = ?", userID.String()).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authDTO.UserResponse{}, apperr.ErrNotFound
		}
		return authDTO.UserResponse{}, err
	}
	return authDTO.FromUserModel(user), nil
}

/* ========================== FORGOT PASSWORD ========================== */
// Selalu balas sukses ke caller (hindari user enumeration); email reset
// hanya dikirim kalau user-nya memang ada.

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	var user userModel.UserModel
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[INFO] forgot-password untuk email tidak terdaftar: %s", email)
			return nil
		}
		return err
	}

	token, err := authHelper.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	expiry := time.Now().Add(resetTokenTTL)

	if err := s.DB.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}).Error; err != nil {
		return err
	}

	s.Dispatcher.DispatchResetPassword(ctx, user.Email, user.UserName, token)
	return nil
}

/* ========================== RESET PASSWORD ========================== */

func (s *AuthService) ResetPassword(ctx context.Context, req authDTO.ResetPasswordRequest) error {
	var user userModel.UserModel
	if err := s.DB.WithContext(ctx).Where("reset_token = ?", req.Token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return ErrInvalidResetToken
	}

	hashed, err := authHelper.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.DB.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"password":           hashed,
		"reset_token":        nil,
		"reset_token_expiry": nil,
	}).Error; err != nil {
		return err
	}

	s.Dispatcher.DispatchPasswordChanged(ctx, user.Email, user.UserName)
	return nil
}

/* ========================== CHANGE PASSWORD ========================== */

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req authDTO.ChangePasswordRequest) error {
	var user userModel.UserModel
	if err := s.DB.WithContext(ctx).Where("id = ?", userID.String()).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}

	if err := authHelper.CheckPasswordHash(user.Password, req.CurrentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := authHelper.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.DB.WithContext(ctx).Model(&user).Update("password", hashed).Error; err != nil {
		return err
	}

	s.Dispatcher.DispatchPasswordChanged(ctx, user.Email, user.UserName)
	return nil
}
