package model

import (
	"time"

	"github.com/Rudio1/api-meals/internal/domain/enums"
)

type Post struct {
	ID         int64            `json:"id"`
	Title      string           `json:"title"`
	Slug       string           `json:"slug"`
	Content    string           `json:"content"`
	CoverImage string           `json:"cover_image,omitempty"`
	AuthorID   int64            `json:"author_id"`
	Status     enums.PostStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (p Post) OwnerID() int64 {
	return p.AuthorID
}
