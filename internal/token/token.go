package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/drivetrade/vehicle-store-api/internal/model"
)

var (
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrMissingSubject  = errors.New("token has no subject")
	ErrSubjectMismatch = errors.New("token subject does not match")
)

// Claims is the signed JWT payload. The subject is the user's email.
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and validates bearer tokens with a process-wide secret and a
// fixed validity window. It holds no other state.
type Manager struct {
	secret []byte
	expiry time.Duration
}

func NewManager(secret string, expiry time.Duration) *Manager {
	return &Manager{secret: []byte(secret), expiry: expiry}
}

// Issue creates a signed HS256 token for the user.
func (m *Manager) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Validate checks signature and expiry and that the subject matches the
// expected identity. It fails closed: any parse problem is ErrInvalidToken.
func (m *Manager) Validate(tokenString, expectedSubject string) error {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return ErrInvalidToken
	}
	if claims.Subject != expectedSubject {
		return ErrSubjectMismatch
	}
	return nil
}

// ExtractSubject decodes the subject claim without verifying signature or
// expiry. Callers use it for the first-pass user lookup and must follow up
// with Validate before trusting the token.
func (m *Manager) ExtractSubject(tokenString string) (string, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}
