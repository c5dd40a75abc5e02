package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Rudio1/api-meals/internal/domain/enums"
	"github.com/Rudio1/api-meals/internal/domain/model"
	"github.com/Rudio1/api-meals/internal/services/content"
)

const postColumns = `id, title, slug, content, cover_image, author_id, status, created_at, updated_at`

type PostRepo struct {
	db DBTX
}

func NewPostRepo(db DBTX) *PostRepo {
	return &PostRepo{db: db}
}

func (r *PostRepo) Create(ctx context.Context, post model.Post) (model.Post, error) {
	if r.db == nil {
		return model.Post{}, fmt.Errorf("postgres pool is nil")
	}

	created, err := scanPost(r.db.QueryRow(ctx, `
INSERT INTO posts (title, slug, content, cover_image, author_id, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
RETURNING `+postColumns,
		post.Title, post.Slug, post.Content, post.CoverImage, post.AuthorID, string(post.Status)))
	if err != nil {
		if isUniqueViolation(err, "posts_slug_key") {
			return model.Post{}, content.ErrConflict
		}
		return model.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return created, nil
}

func (r *PostRepo) GetByID(ctx context.Context, id int64) (model.Post, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *PostRepo) GetBySlug(ctx context.Context, slug string) (model.Post, error) {
	return r.getOne(ctx, "slug = $1", slug)
}

func (r *PostRepo) getOne(ctx context.Context, where string, arg any) (model.Post, error) {
	if r.db == nil {
		return model.Post{}, fmt.Errorf("postgres pool is nil")
	}

	post, err := scanPost(r.db.QueryRow(ctx, `
SELECT `+postColumns+`
FROM posts
WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, content.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (r *PostRepo) List(ctx context.Context, filter content.PostFilter) ([]model.Post, error) {
	if r.db == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	var (
		conditions []string
		args       []any
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.AuthorID > 0 {
		args = append(args, filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("author_id = $%d", len(args)))
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0, filter.Limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepo) Update(ctx context.Context, post model.Post) (model.Post, error) {
	if r.db == nil {
		return model.Post{}, fmt.Errorf("postgres pool is nil")
	}

	updated, err := scanPost(r.db.QueryRow(ctx, `
UPDATE posts
SET title = $2, slug = $3, content = $4, cover_image = $5, status = $6, updated_at = NOW()
WHERE id = $1
RETURNING `+postColumns,
		post.ID, post.Title, post.Slug, post.Content, post.CoverImage, string(post.Status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, content.ErrNotFound
		}
		if isUniqueViolation(err, "posts_slug_key") {
			return model.Post{}, content.ErrConflict
		}
		return model.Post{}, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

func scanPost(row pgx.Row) (model.Post, error) {
	var (
		post   model.Post
		status string
	)
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Content,
		&post.CoverImage,
		&post.AuthorID,
		&status,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	post.Status = enums.PostStatus(status)
	return post, err
}
