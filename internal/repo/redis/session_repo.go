package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
)

const sessionPrefix = "session:"

// SessionRepo keeps one hash per account. Put replaces the hash, so a new
// login revokes the previous refresh token. Keys carry no TTL: an expired
// session stays until the next login and is rejected at refresh time.
type SessionRepo struct {
	client *goredis.Client
}

func NewSessionRepo(client *goredis.Client) *SessionRepo {
	return &SessionRepo{client: client}
}

func (r *SessionRepo) Put(ctx context.Context, session authsvc.SessionRecord) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if session.UserID <= 0 || strings.TrimSpace(session.RefreshToken) == "" {
		return authsvc.ErrInvalidInput
	}

	key := sessionKey(session.UserID)
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]interface{}{
		"refresh_token": session.RefreshToken,
		"expires_at":    session.ExpiresAt.Unix(),
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("put redis session: %w", err)
	}

	return nil
}

func (r *SessionRepo) Get(ctx context.Context, userID int64) (authsvc.SessionRecord, error) {
	if r.client == nil {
		return authsvc.SessionRecord{}, fmt.Errorf("redis client is nil")
	}
	if userID <= 0 {
		return authsvc.SessionRecord{}, authsvc.ErrSessionNotFound
	}

	values, err := r.client.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return authsvc.SessionRecord{}, fmt.Errorf("get session hash: %w", err)
	}
	if len(values) == 0 {
		return authsvc.SessionRecord{}, authsvc.ErrSessionNotFound
	}

	refreshToken := values["refresh_token"]
	expiresUnix, err := strconv.ParseInt(values["expires_at"], 10, 64)
	if err != nil || refreshToken == "" {
		return authsvc.SessionRecord{}, authsvc.ErrSessionNotFound
	}

	return authsvc.SessionRecord{
		UserID:       userID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Unix(expiresUnix, 0).UTC(),
	}, nil
}

func sessionKey(userID int64) string {
	return sessionPrefix + strconv.FormatInt(userID, 10)
}
