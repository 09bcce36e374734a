package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents admin session token claims.
type Claims struct {
	jwt.RegisteredClaims
	AdminID uuid.UUID `json:"admin_id"`
	Email   string    `json:"email"`
}

// JWTConfig holds session token configuration.
type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// JWTManager issues and validates admin session tokens.
type JWTManager struct {
	config *JWTConfig
}

func NewJWTManager(config *JWTConfig) *JWTManager {
	if config.Issuer == "" {
		config.Issuer = "hackathon"
	}
	if config.Expiry <= 0 {
		config.Expiry = 12 * time.Hour
	}
	return &JWTManager{config: config}
}

// Generate signs a session token for the admin.
func (m *JWTManager) Generate(admin *AdminUser) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   admin.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		AdminID: admin.ID,
		Email:   admin.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.config.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return signed, claims, nil
}

// Validate parses a session token and returns its claims.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidTokenClaims
	}
	return claims, nil
}

// Expiry returns the configured session lifetime.
func (m *JWTManager) Expiry() time.Duration {
	return m.config.Expiry
}
