package auth

import (
	"testing"
	"time"

	"dispatch/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestService(t *testing.T) *jwtService {
	cfg := &config.Config{}
	cfg.SecretKey.Access = testSecret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestNewJWTService_MissingSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestValidateToken_Valid(t *testing.T) {
	svc := newTestService(t)

	signed := signToken(t, jwt.MapClaims{
		"sub": "caller-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "caller-1", claims.AuthID)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(t)

	signed := signToken(t, jwt.MapClaims{
		"sub": "caller-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}, testSecret)

	_, err := svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestService(t)

	signed := signToken(t, jwt.MapClaims{
		"sub": "caller-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, "other-secret")

	_, err := svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_MissingSubject(t *testing.T) {
	svc := newTestService(t)

	signed := signToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	_, err := svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
