package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultAccessTTL  = time.Hour
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// JWTManager signs and verifies both token kinds with one server-wide secret.
type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

type tokenClaims struct {
	Email string    `json:"email"`
	Kind  TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}

	return &JWTManager{
		secret:     []byte(strings.TrimSpace(secret)),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *JWTManager) AccessTTL() time.Duration {
	return m.accessTTL
}

func (m *JWTManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

func (m *JWTManager) GenerateAccessToken(identity Identity) (string, time.Time, error) {
	return m.generate(identity, TokenKindAccess, m.accessTTL)
}

func (m *JWTManager) GenerateRefreshToken(identity Identity) (string, time.Time, error) {
	return m.generate(identity, TokenKindRefresh, m.refreshTTL)
}

func (m *JWTManager) generate(identity Identity, kind TokenKind, ttl time.Duration) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, ErrMisconfigured
	}
	if identity.UserID <= 0 || strings.TrimSpace(identity.Email) == "" {
		return "", time.Time{}, fmt.Errorf("invalid %s token payload", kind)
	}

	now := m.now().UTC()
	expiresAt := now.Add(ttl)
	claims := tokenClaims{
		Email: identity.Email,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(identity.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", kind, err)
	}

	return signed, expiresAt, nil
}

// ParseToken fails closed: any problem with signature, structure, expiry or
// kind yields ErrUnauthenticated and no claims.
func (m *JWTManager) ParseToken(raw string, kind TokenKind) (TokenClaims, error) {
	if len(m.secret) == 0 {
		return TokenClaims{}, ErrMisconfigured
	}
	if strings.TrimSpace(raw) == "" {
		return TokenClaims{}, ErrUnauthenticated
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || token == nil || !token.Valid {
		return TokenClaims{}, ErrUnauthenticated
	}

	userID, parseErr := strconv.ParseInt(claims.Subject, 10, 64)
	if parseErr != nil || userID <= 0 {
		return TokenClaims{}, ErrUnauthenticated
	}
	if claims.Kind != kind || strings.TrimSpace(claims.Email) == "" {
		return TokenClaims{}, ErrUnauthenticated
	}

	return TokenClaims{
		UserID:    userID,
		Email:     claims.Email,
		Kind:      claims.Kind,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
