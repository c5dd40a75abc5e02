package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
)

// SessionRepo stores the single live session in the users row itself, so an
// overwrite on login is the only revocation mechanism.
type SessionRepo struct {
	db DBTX
}

func NewSessionRepo(db DBTX) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Put(ctx context.Context, session authsvc.SessionRecord) error {
	if r.db == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if session.UserID <= 0 || strings.TrimSpace(session.RefreshToken) == "" {
		return authsvc.ErrInvalidInput
	}

	tag, err := r.db.Exec(ctx, `
UPDATE users
SET refresh_token = $2,
    refresh_token_expires_at = $3,
    updated_at = NOW()
WHERE id = $1
`, session.UserID, session.RefreshToken, session.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("update user session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return authsvc.ErrAccountNotFound
	}
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, userID int64) (authsvc.SessionRecord, error) {
	if r.db == nil {
		return authsvc.SessionRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var (
		refreshToken *string
		expiresAt    *time.Time
	)
	err := r.db.QueryRow(ctx, `
SELECT refresh_token, refresh_token_expires_at
FROM users
WHERE id = $1
`, userID).Scan(&refreshToken, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authsvc.SessionRecord{}, authsvc.ErrSessionNotFound
		}
		return authsvc.SessionRecord{}, fmt.Errorf("get user session: %w", err)
	}
	if refreshToken == nil || *refreshToken == "" || expiresAt == nil {
		return authsvc.SessionRecord{}, authsvc.ErrSessionNotFound
	}

	return authsvc.SessionRecord{
		UserID:       userID,
		RefreshToken: *refreshToken,
		ExpiresAt:    expiresAt.UTC(),
	}, nil
}
