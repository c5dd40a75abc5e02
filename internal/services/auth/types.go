package auth

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrMisconfigured      = errors.New("auth is misconfigured")
)

// Store-level errors returned by AccountStore and SessionStore implementations.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrEmailTaken      = errors.New("email already registered")
)

type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

type AccountRecord struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type NewAccount struct {
	Name         string
	Email        string
	PasswordHash string
}

// SessionRecord is the single refresh credential currently valid for an account.
type SessionRecord struct {
	UserID       int64
	RefreshToken string
	ExpiresAt    time.Time
}

type TokenClaims struct {
	UserID    int64
	Email     string
	Kind      TokenKind
	ExpiresAt time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken    string
	RefreshToken   string
	AccessExpires  time.Time
	RefreshExpires time.Time
	Account        AccountRecord
}

type RefreshResult struct {
	AccessToken   string
	AccessExpires time.Time
}
