package model

import (
	"time"

	"github.com/Rudio1/api-meals/internal/domain/enums"
)

type Comment struct {
	ID        int64               `json:"id"`
	PostID    int64               `json:"post_id"`
	UserID    int64               `json:"user_id"`
	Comment   string              `json:"comment"`
	Rating    *int                `json:"rating"`
	Status    enums.CommentStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (c Comment) OwnerID() int64 {
	return c.UserID
}

type Reply struct {
	ID        int64               `json:"id"`
	CommentID int64               `json:"comment_id"`
	UserID    int64               `json:"user_id"`
	Reply     string              `json:"reply"`
	Status    enums.CommentStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (r Reply) OwnerID() int64 {
	return r.UserID
}

// CommentTarget is the state a reply depends on: the parent comment and the
// post it belongs to.
type CommentTarget struct {
	CommentID     int64
	CommentStatus enums.CommentStatus
	PostStatus    enums.PostStatus
}
