package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token fails parsing or signature checks
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token is past its expiry
	ErrExpiredToken = errors.New("expired token")
)

// Claims carries the authenticated user identity inside access tokens
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Manager issues and verifies HMAC-signed JWT tokens
type Manager struct {
	secretKey []byte
	expiresIn time.Duration
	refreshIn time.Duration
}

// NewManager creates a token manager. Durations are in hours.
func NewManager(secret string, expiresInHours, refreshInHours int) *Manager {
	return &Manager{
		secretKey: []byte(secret),
		expiresIn: time.Duration(expiresInHours) * time.Hour,
		refreshIn: time.Duration(refreshInHours) * time.Hour,
	}
}

// GenerateAccessToken issues a short-lived access token for the user
func (m *Manager) GenerateAccessToken(email, fullName, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiresIn)),
		},
		Email:    email,
		FullName: fullName,
		Role:     role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// GenerateRefreshToken issues a longer-lived token carrying only the identity
func (m *Manager) GenerateRefreshToken(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshIn)),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// VerifyToken parses and validates a token string
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
