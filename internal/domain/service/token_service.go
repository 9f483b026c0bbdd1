// Package service defines the domain service interfaces implemented by the
// infra layer.
package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims carried in access tokens. AuthID is the
// opaque identity that registrations are correlated to.
type Claims struct {
	AuthID string
	jwt.RegisteredClaims
}

// TokenService defines the interface for validating caller access tokens.
type TokenService interface {
	// ValidateToken checks the validity of a token string and returns its
	// claims.
	ValidateToken(tokenString string) (*Claims, error)
}
