package auth

import "errors"

// Auth module errors.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTokenClaims = errors.New("invalid token claims")
	ErrRevokedToken       = errors.New("token has been revoked")
	ErrAdminNotFound      = errors.New("admin not found")
)
