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

const commentColumns = `id, post_id, user_id, comment, rating, status, created_at, updated_at`

type CommentRepo struct {
	db DBTX
	tx TxBeginner
}

// NewCommentRepo takes the pool twice: as a query handle and as the
// transaction source for cascading soft deletes.
func NewCommentRepo(db DBTX, tx TxBeginner) *CommentRepo {
	return &CommentRepo{db: db, tx: tx}
}

func (r *CommentRepo) Create(ctx context.Context, comment model.Comment) (model.Comment, error) {
	if r.db == nil {
		return model.Comment{}, fmt.Errorf("postgres pool is nil")
	}

	created, err := scanComment(r.db.QueryRow(ctx, `
INSERT INTO post_comments (post_id, user_id, comment, rating, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, 'active', NOW(), NOW())
RETURNING `+commentColumns,
		comment.PostID, comment.UserID, comment.Comment, comment.Rating))
	if err != nil {
		if isUniqueViolation(err, "post_comments_one_active_per_user") {
			return model.Comment{}, content.ErrConflict
		}
		return model.Comment{}, fmt.Errorf("insert comment: %w", err)
	}
	return created, nil
}

func (r *CommentRepo) GetActive(ctx context.Context, id int64) (model.Comment, error) {
	if r.db == nil {
		return model.Comment{}, fmt.Errorf("postgres pool is nil")
	}

	comment, err := scanComment(r.db.QueryRow(ctx, `
SELECT `+commentColumns+`
FROM post_comments
WHERE id = $1 AND status <> 'deleted'
`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Comment{}, content.ErrNotFound
		}
		return model.Comment{}, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

func (r *CommentRepo) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	if r.db == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.db.Query(ctx, `
SELECT `+commentColumns+`
FROM post_comments
WHERE post_id = $1 AND status <> 'deleted'
ORDER BY created_at ASC, id ASC
`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}

func (r *CommentRepo) Update(ctx context.Context, comment model.Comment) (model.Comment, error) {
	if r.db == nil {
		return model.Comment{}, fmt.Errorf("postgres pool is nil")
	}

	updated, err := scanComment(r.db.QueryRow(ctx, `
UPDATE post_comments
SET comment = $2, rating = $3, updated_at = NOW()
WHERE id = $1 AND status <> 'deleted'
RETURNING `+commentColumns,
		comment.ID, comment.Comment, comment.Rating))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Comment{}, content.ErrNotFound
		}
		return model.Comment{}, fmt.Errorf("update comment: %w", err)
	}
	return updated, nil
}

// SoftDelete retires the comment and its replies in one transaction.
func (r *CommentRepo) SoftDelete(ctx context.Context, id int64) error {
	return WithTx(ctx, r.tx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
UPDATE post_comments
SET status = 'deleted', updated_at = NOW()
WHERE id = $1 AND status <> 'deleted'
`, id)
		if err != nil {
			return fmt.Errorf("soft delete comment: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return content.ErrNotFound
		}

		if _, err := tx.Exec(ctx, `
UPDATE post_comment_replies
SET status = 'deleted', updated_at = NOW()
WHERE comment_id = $1 AND status <> 'deleted'
`, id); err != nil {
			return fmt.Errorf("soft delete comment replies: %w", err)
		}
		return nil
	})
}

func scanComment(row pgx.Row) (model.Comment, error) {
	var (
		comment model.Comment
		rating  *int16
		status  string
	)
	err := row.Scan(
		&comment.ID,
		&comment.PostID,
		&comment.UserID,
		&comment.Comment,
		&rating,
		&status,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if rating != nil {
		value := int(*rating)
		comment.Rating = &value
	}
	comment.Status = enums.CommentStatus(status)
	return comment, err
}
