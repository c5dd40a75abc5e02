package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

const (
	MaxNameLength  = 120
	MaxEmailLength = 254
)

type AccountStore interface {
	Create(ctx context.Context, account NewAccount) (AccountRecord, error)
	FindByEmail(ctx context.Context, email string) (AccountRecord, error)
	FindByID(ctx context.Context, id int64) (AccountRecord, error)
}

// SessionStore keeps at most one refresh credential per account. Put replaces
// whatever was stored before.
type SessionStore interface {
	Put(ctx context.Context, session SessionRecord) error
	Get(ctx context.Context, userID int64) (SessionRecord, error)
}

type Service struct {
	jwt      *JWTManager
	accounts AccountStore
	sessions SessionStore
	now      func() time.Time
}

func NewService(jwtManager *JWTManager, accounts AccountStore, sessions SessionStore) *Service {
	return &Service{
		jwt:      jwtManager,
		accounts: accounts,
		sessions: sessions,
		now:      time.Now,
	}
}

func (s *Service) AccessTTL() time.Duration {
	return s.jwt.AccessTTL()
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (AccountRecord, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	if name == "" || len(name) > MaxNameLength {
		return AccountRecord{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if email == "" || len(email) > MaxEmailLength {
		return AccountRecord{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return AccountRecord{}, fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLength || len(in.Password) > MaxPasswordLength {
		return AccountRecord{}, fmt.Errorf("%w: password must be %d-%d characters", ErrInvalidInput, MinPasswordLength, MaxPasswordLength)
	}

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return AccountRecord{}, ErrConflict
	} else if !errors.Is(err, ErrAccountNotFound) {
		return AccountRecord{}, fmt.Errorf("find account by email: %w", err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return AccountRecord{}, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.accounts.Create(ctx, NewAccount{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return AccountRecord{}, ErrConflict
		}
		return AccountRecord{}, fmt.Errorf("create account: %w", err)
	}

	return account, nil
}

// Login overwrites any previous session of the account. Tokens are only
// returned once the new refresh token is persisted.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidInput
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("find account by email: %w", err)
	}
	if err := CheckPassword(account.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	identity := Identity{UserID: account.ID, Email: account.Email}
	accessToken, accessExpires, err := s.jwt.GenerateAccessToken(identity)
	if err != nil {
		return LoginResult{}, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, refreshExpires, err := s.jwt.GenerateRefreshToken(identity)
	if err != nil {
		return LoginResult{}, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.sessions.Put(ctx, SessionRecord{
		UserID:       account.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    refreshExpires,
	}); err != nil {
		return LoginResult{}, fmt.Errorf("store session: %w", err)
	}

	return LoginResult{
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
		AccessExpires:  accessExpires,
		RefreshExpires: refreshExpires,
		Account:        account,
	}, nil
}

// ValidateAccessToken does not consult the session store: an access token
// stays valid until it expires even after a newer login.
func (s *Service) ValidateAccessToken(_ context.Context, accessToken string) (Identity, error) {
	claims, err := s.jwt.ParseToken(accessToken, TokenKindAccess)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// Refresh issues a new access token for a refresh token that is both validly
// signed and the one currently stored for the account. The refresh token
// itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (RefreshResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return RefreshResult{}, ErrInvalidInput
	}

	claims, err := s.jwt.ParseToken(refreshToken, TokenKindRefresh)
	if err != nil {
		return RefreshResult{}, err
	}

	session, err := s.sessions.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrAccountNotFound) {
			return RefreshResult{}, ErrUnauthenticated
		}
		return RefreshResult{}, fmt.Errorf("get session: %w", err)
	}
	// TODO: compare a SHA-256 digest of the refresh token once stored sessions are migrated to hashed values.
	if session.RefreshToken != refreshToken {
		return RefreshResult{}, ErrUnauthenticated
	}
	if !session.ExpiresAt.After(s.now()) {
		return RefreshResult{}, ErrUnauthenticated
	}

	account, err := s.accounts.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return RefreshResult{}, ErrUnauthenticated
		}
		return RefreshResult{}, fmt.Errorf("find account: %w", err)
	}

	accessToken, accessExpires, err := s.jwt.GenerateAccessToken(Identity{UserID: account.ID, Email: account.Email})
	if err != nil {
		return RefreshResult{}, fmt.Errorf("generate access token: %w", err)
	}

	return RefreshResult{
		AccessToken:   accessToken,
		AccessExpires: accessExpires,
	}, nil
}

// RequireAdmin reads the account on every call so a revoked admin flag takes
// effect immediately.
func (s *Service) RequireAdmin(ctx context.Context, identity Identity) (Identity, error) {
	if identity.UserID <= 0 {
		return Identity{}, ErrUnauthenticated
	}

	account, err := s.accounts.FindByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return Identity{}, ErrNotFound
		}
		return Identity{}, fmt.Errorf("find account: %w", err)
	}
	if !account.IsAdmin {
		return Identity{}, ErrForbidden
	}

	identity.Email = account.Email
	identity.IsAdmin = true
	return identity, nil
}

func (s *Service) Me(ctx context.Context, identity Identity) (AccountRecord, error) {
	account, err := s.accounts.FindByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return AccountRecord{}, ErrNotFound
		}
		return AccountRecord{}, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}
