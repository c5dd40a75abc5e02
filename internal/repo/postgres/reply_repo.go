package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Rudio1/api-meals/internal/domain/enums"
	"github.com/Rudio1/api-meals/internal/domain/model"
	"github.com/Rudio1/api-meals/internal/services/content"
)

const replyColumns = `id, comment_id, user_id, reply, status, created_at, updated_at`

type ReplyRepo struct {
	db DBTX
}

func NewReplyRepo(db DBTX) *ReplyRepo {
	return &ReplyRepo{db: db}
}

func (r *ReplyRepo) Create(ctx context.Context, reply model.Reply) (model.Reply, error) {
	if r.db == nil {
		return model.Reply{}, fmt.Errorf("postgres pool is nil")
	}

	created, err := scanReply(r.db.QueryRow(ctx, `
INSERT INTO post_comment_replies (comment_id, user_id, reply, status, created_at, updated_at)
VALUES ($1, $2, $3, 'active', NOW(), NOW())
RETURNING `+replyColumns,
		reply.CommentID, reply.UserID, reply.Reply))
	if err != nil {
		return model.Reply{}, fmt.Errorf("insert reply: %w", err)
	}
	return created, nil
}

func (r *ReplyRepo) GetActive(ctx context.Context, id int64) (model.Reply, error) {
	if r.db == nil {
		return model.Reply{}, fmt.Errorf("postgres pool is nil")
	}

	reply, err := scanReply(r.db.QueryRow(ctx, `
SELECT `+replyColumns+`
FROM post_comment_replies
WHERE id = $1 AND status <> 'deleted'
`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Reply{}, content.ErrNotFound
		}
		return model.Reply{}, fmt.Errorf("get reply: %w", err)
	}
	return reply, nil
}

func (r *ReplyRepo) ListByComment(ctx context.Context, commentID int64) ([]model.Reply, error) {
	if r.db == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.db.Query(ctx, `
SELECT `+replyColumns+`
FROM post_comment_replies
WHERE comment_id = $1 AND status <> 'deleted'
ORDER BY created_at ASC, id ASC
`, commentID)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	defer rows.Close()

	replies := []model.Reply{}
	for rows.Next() {
		reply, err := scanReply(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reply: %w", err)
		}
		replies = append(replies, reply)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate replies: %w", err)
	}
	return replies, nil
}

func (r *ReplyRepo) Update(ctx context.Context, reply model.Reply) (model.Reply, error) {
	if r.db == nil {
		return model.Reply{}, fmt.Errorf("postgres pool is nil")
	}

	updated, err := scanReply(r.db.QueryRow(ctx, `
UPDATE post_comment_replies
SET reply = $2, updated_at = NOW()
WHERE id = $1 AND status <> 'deleted'
RETURNING `+replyColumns,
		reply.ID, reply.Reply))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Reply{}, content.ErrNotFound
		}
		return model.Reply{}, fmt.Errorf("update reply: %w", err)
	}
	return updated, nil
}

func (r *ReplyRepo) SoftDelete(ctx context.Context, id int64) error {
	if r.db == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.db.Exec(ctx, `
UPDATE post_comment_replies
SET status = 'deleted', updated_at = NOW()
WHERE id = $1 AND status <> 'deleted'
`, id)
	if err != nil {
		return fmt.Errorf("soft delete reply: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return content.ErrNotFound
	}
	return nil
}

func (r *ReplyRepo) CommentTarget(ctx context.Context, commentID int64) (model.CommentTarget, error) {
	if r.db == nil {
		return model.CommentTarget{}, fmt.Errorf("postgres pool is nil")
	}

	var commentStatus, postStatus string
	err := r.db.QueryRow(ctx, `
SELECT c.status, p.status
FROM post_comments AS c
JOIN posts AS p ON p.id = c.post_id
WHERE c.id = $1 AND c.status <> 'deleted'
`, commentID).Scan(&commentStatus, &postStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CommentTarget{}, content.ErrNotFound
		}
		return model.CommentTarget{}, fmt.Errorf("get reply target: %w", err)
	}

	return model.CommentTarget{
		CommentID:     commentID,
		CommentStatus: enums.CommentStatus(commentStatus),
		PostStatus:    enums.PostStatus(postStatus),
	}, nil
}

func scanReply(row pgx.Row) (model.Reply, error) {
	var (
		reply  model.Reply
		status string
	)
	err := row.Scan(
		&reply.ID,
		&reply.CommentID,
		&reply.UserID,
		&reply.Reply,
		&status,
		&reply.CreatedAt,
		&reply.UpdatedAt,
	)
	reply.Status = enums.CommentStatus(status)
	return reply, err
}
