package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hoh_backend/internals/apperr"
	"hoh_backend/internals/configs"
	"hoh_backend/internals/constants"
	authDTO "hoh_backend/internals/features/users/auth/dto"
	authHelper "hoh_backend/internals/features/users/auth/helper"
	userModel "hoh_backend/internals/features/users/user/model"
)

func TestMain(m *testing.M) {
	configs.JWTSecret = "unit-test-secret"
	os.Exit(m.Run())
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userModel.UserModel{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, password string, active bool) *userModel.UserModel {
	t.Helper()
	hashed, err := authHelper.HashPassword(password)
	require.NoError(t, err)
	user := &userModel.UserModel{
		UserName: "Staff Panti",
		Email:    email,
		Password: hashed,
		Role:     constants.RoleStaff,
		IsActive: &active,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLogin(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, nil)
	ctx := context.Background()
	seedUser(t, db, "staff@hoh.id", "rahasia-sekali", true)

	resp, err := svc.Login(ctx, authDTO.LoginRequest{Email: "staff@hoh.id", Password: "rahasia-sekali"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "staff@hoh.id", resp.User.Email)

	_, err = svc.Login(ctx, authDTO.LoginRequest{Email: "staff@hoh.id", Password: "salah"})
	require.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = svc.Login(ctx, authDTO.LoginRequest{Email: "ghost@hoh.id", Password: "apapun"})
	require.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestLogin_InactiveUserRejected(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, nil)
	seedUser(t, db, "nonaktif@hoh.id", "rahasia-sekali", false)

	// status nonaktif ikut tersimpan (tidak tertimpa default kolom)
	var stored userModel.UserModel
	require.NoError(t, db.First(&stored, "email = ?", "nonaktif@hoh.id").Error)
	require.NotNil(t, stored.IsActive)
	require.False(t, *stored.IsActive)

	_, err := svc.Login(context.Background(), authDTO.LoginRequest{Email: "nonaktif@hoh.id", Password: "rahasia-sekali"})
	require.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, nil)
	ctx := context.Background()

	resp, err := svc.Register(ctx, authDTO.RegisterRequest{
		UserName: "Staff Baru", Email: "baru@hoh.id", Password: "rahasia-sekali",
	})
	require.NoError(t, err)
	require.Equal(t, constants.RoleStaff, resp.Role)

	_, err = svc.Register(ctx, authDTO.RegisterRequest{
		UserName: "Staff Lain", Email: "baru@hoh.id", Password: "rahasia-sekali",
	})
	require.True(t, errors.Is(err, apperr.ErrConstraintViolation))
}

func TestForgotPassword_UnknownEmailSilent(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, nil)

	// email tidak terdaftar tetap sukses (anti user enumeration)
	require.NoError(t, svc.ForgotPassword(context.Background(), "ghost@hoh.id"))
}

func TestResetPassword_Flow(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, nil)
	ctx := context.Background()
	user := seedUser(t, db, "staff@hoh.id", "password-lama", true)

	require.NoError(t, svc.ForgotPassword(ctx, user.Email))

	var withToken userModel.UserModel
	require.NoError(t, db.First(&withToken, "email = ?", user.Email).Error)
	require.NotNil(t, withToken.ResetToken)
	require.NotNil(t, withToken.ResetTokenExpiry)

	require.NoError(t, svc.ResetPassword(ctx, authDTO.ResetPasswordRequest{
		Token: *withToken.ResetToken, NewPassword: "password-baru",
	}))

	// token sekali pakai
	err := svc.ResetPassword(ctx, authDTO.ResetPasswordRequest{
		Token: *withToken.ResetToken, NewPassword: "password-lain",
	})
	require.True(t, errors.Is(err, ErrInvalidResetToken))

	_, err = svc.Login(ctx, authDTO.LoginRequest{Email: user.Email, Password: "password-baru"})
	require.NoError(t, err)
	_, err = svc.Login(ctx, authDTO.LoginRequest{Email: user.Email, Password: "password-lama"})
	require.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, nil)
	user := seedUser(t, db, "staff@hoh.id", "password-lama", true)

	token := "abcdef0123456789"
	expired := time.Now().Add(-1 * time.Minute)
	require.NoError(t, db.Model(user).Updates(map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expired,
	}).Error)

	err := svc.ResetPassword(context.Background(), authDTO.ResetPasswordRequest{
		Token: token, NewPassword: "password-baru",
	})
	require.True(t, errors.Is(err, ErrInvalidResetToken))
}

func TestChangePassword(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, nil)
	ctx := context.Background()
	user := seedUser(t, db, "staff@hoh.id", "password-lama", true)

	err := svc.ChangePassword(ctx, user.ID, authDTO.ChangePasswordRequest{
		CurrentPassword: "salah", NewPassword: "password-baru",
	})
	require.True(t, errors.Is(err, ErrInvalidCredentials))

	require.NoError(t, svc.ChangePassword(ctx, user.ID, authDTO.ChangePasswordRequest{
		CurrentPassword: "password-lama", NewPassword: "password-baru",
	}))

	_, err = svc.Login(ctx, authDTO.LoginRequest{Email: user.Email, Password: "password-baru"})
	require.NoError(t, err)
}
