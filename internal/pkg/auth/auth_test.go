package auth

import (
	"testing"
	"time"

	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(expiry time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "QL Kho"
	cfg.JWT.Secret = "test-secret-key-for-unit-tests-only-0123456789"
	cfg.JWT.AccessTokenExpiry = expiry
	cfg.Security.BcryptCost = 4
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	mgr := NewJWTManager(testConfig(time.Hour))

	token, err := mgr.GenerateToken(42, "nhanvien1", "staff")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "nhanvien1", claims.Username)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, "QL Kho", claims.Issuer)
	assert.Equal(t, "user:42", claims.Subject)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	mgr := NewJWTManager(testConfig(time.Hour))
	token, err := mgr.GenerateToken(1, "a", "staff")
	require.NoError(t, err)

	other := NewJWTManager(testConfig(time.Hour))
	other.config.JWT.Secret = "a-completely-different-secret-0123456789"

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	mgr := NewJWTManager(testConfig(-time.Minute))
	token, err := mgr.GenerateToken(1, "a", "staff")
	require.NoError(t, err)

	_, err = mgr.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	mgr := NewJWTManager(testConfig(time.Hour))
	_, err := mgr.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", ExtractTokenFromHeader("Bearer abc.def.ghi"))
	assert.Empty(t, ExtractTokenFromHeader("abc.def.ghi"))
	assert.Empty(t, ExtractTokenFromHeader("Basic abc"))
	assert.Empty(t, ExtractTokenFromHeader(""))
}

func TestHashAndVerifyPassword(t *testing.T) {
	pm := NewPasswordManager(testConfig(time.Hour))

	hash, err := pm.HashPassword("matkhau123")
	require.NoError(t, err)
	assert.NotEqual(t, "matkhau123", hash)

	assert.NoError(t, pm.VerifyPassword("matkhau123", hash))
	assert.Error(t, pm.VerifyPassword("saimatkhau", hash))
}

func TestHashPasswordTooShort(t *testing.T) {
	pm := NewPasswordManager(testConfig(time.Hour))
	_, err := pm.HashPassword("abc")
	assert.Error(t, err)
}
