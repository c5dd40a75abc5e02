package dto

import "time"

type CreatePostRequest struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Content    string `json:"content"`
	CoverImage string `json:"cover_image"`
	Status     string `json:"status"`
}

type UpdatePostRequest struct {
	Title      *string `json:"title"`
	Slug       *string `json:"slug"`
	Content    *string `json:"content"`
	CoverImage *string `json:"cover_image"`
	Status     *string `json:"status"`
}

type CreateCommentRequest struct {
	PostID  int64  `json:"post_id"`
	Comment string `json:"comment"`
	Rating  *int   `json:"rating"`
}

type UpdateCommentRequest struct {
	Comment *string `json:"comment"`
	Rating  *int    `json:"rating"`
}

type CreateReplyRequest struct {
	CommentID int64  `json:"comment_id"`
	Reply     string `json:"reply"`
}

type UpdateReplyRequest struct {
	Reply string `json:"reply"`
}

type CreateMealTypeRequest struct {
	Name string `json:"name"`
}

type CreateMealRequest struct {
	TypeID      int64     `json:"type_id"`
	Description string    `json:"description"`
	DateTime    time.Time `json:"date_time"`
}

type UpdateMealRequest struct {
	TypeID      *int64     `json:"type_id"`
	Description *string    `json:"description"`
	DateTime    *time.Time `json:"date_time"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
