package user

import (
	"testing"
	"time"

	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-key-for-unit-tests-only-0123456789"
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.Security.BcryptCost = 4
	return cfg
}

func setupTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	return NewService(db, testConfig())
}

func TestRegister(t *testing.T) {
	svc := setupTestService(t)

	created, err := svc.Register(&RegisterRequest{
		Username: "nhanvien1",
		Password: "matkhau123",
		Email:    "nv1@example.com",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, RoleStaff, created.Role)
	assert.True(t, created.IsActive)
	assert.Empty(t, created.Password, "password must not leak in responses")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.Register(&RegisterRequest{Username: "nhanvien1", Password: "matkhau123"})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{Username: "nhanvien1", Password: "khac456"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.Register(&RegisterRequest{Username: "x", Password: "matkhau123", Role: "superuser"})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.Register(&RegisterRequest{Username: "nhanvien1", Password: "matkhau123"})
	require.NoError(t, err)

	resp, err := svc.Login(&LoginRequest{Username: "nhanvien1", Password: "matkhau123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "nhanvien1", resp.User.Username)
	assert.Empty(t, resp.User.Password)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.Register(&RegisterRequest{Username: "nhanvien1", Password: "matkhau123"})
	require.NoError(t, err)

	_, err = svc.Login(&LoginRequest{Username: "nhanvien1", Password: "saimatkhau"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.Login(&LoginRequest{Username: "khongcoai", Password: "matkhau123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDeactivatedUser(t *testing.T) {
	svc := setupTestService(t)

	created, err := svc.Register(&RegisterRequest{Username: "nhanvien1", Password: "matkhau123"})
	require.NoError(t, err)

	require.NoError(t, svc.SetActive(created.ID, false))

	_, err = svc.Login(&LoginRequest{Username: "nhanvien1", Password: "matkhau123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSetActiveNotFound(t *testing.T) {
	svc := setupTestService(t)
	assert.ErrorIs(t, svc.SetActive(999, false), ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	svc := setupTestService(t)

	created, err := svc.Register(&RegisterRequest{Username: "nhanvien1", Password: "matkhau123"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(created.ID))

	_, err = svc.GetProfile(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	users, err := svc.GetUsers()
	require.NoError(t, err)
	assert.Empty(t, users)
}
