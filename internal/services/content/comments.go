package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rudio1/api-meals/internal/domain/enums"
	"github.com/Rudio1/api-meals/internal/domain/model"
	"github.com/Rudio1/api-meals/internal/domain/rules"
	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
)

// CommentStore only ever returns comments that are not deleted. Create
// reports ErrConflict when the user already has a live comment on the post.
type CommentStore interface {
	Create(ctx context.Context, comment model.Comment) (model.Comment, error)
	GetActive(ctx context.Context, id int64) (model.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
	Update(ctx context.Context, comment model.Comment) (model.Comment, error)
	SoftDelete(ctx context.Context, id int64) error
}

type CommentInput struct {
	PostID  int64
	Comment string
	Rating  *int
}

type CommentPatch struct {
	Comment *string
	Rating  *int
}

type CommentService struct {
	comments CommentStore
	posts    PostStore
}

func NewCommentService(comments CommentStore, posts PostStore) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

func (s *CommentService) Create(ctx context.Context, identity authsvc.Identity, in CommentInput) (model.Comment, error) {
	text := strings.TrimSpace(in.Comment)
	if in.PostID <= 0 || text == "" {
		return model.Comment{}, validationError("post_id and comment are required")
	}
	if err := validateComment(text, in.Rating); err != nil {
		return model.Comment{}, err
	}

	post, err := s.posts.GetByID(ctx, in.PostID)
	if err != nil {
		return model.Comment{}, err
	}
	if post.Status != enums.PostStatusPublished {
		return model.Comment{}, validationError("only published posts accept comments")
	}

	created, err := s.comments.Create(ctx, model.Comment{
		PostID:  in.PostID,
		UserID:  identity.UserID,
		Comment: text,
		Rating:  in.Rating,
		Status:  enums.CommentStatusActive,
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return model.Comment{}, err
		}
		return model.Comment{}, fmt.Errorf("create comment: %w", err)
	}
	return created, nil
}

func (s *CommentService) Get(ctx context.Context, id int64) (model.Comment, error) {
	if id <= 0 {
		return model.Comment{}, validationError("id must be a positive number")
	}
	return s.comments.GetActive(ctx, id)
}

func (s *CommentService) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	if postID <= 0 {
		return nil, validationError("post_id must be a positive number")
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (s *CommentService) Update(ctx context.Context, identity authsvc.Identity, id int64, patch CommentPatch) (model.Comment, error) {
	if patch.Comment == nil && patch.Rating == nil {
		return model.Comment{}, validationError("at least one field must be provided (comment or rating)")
	}

	comment, err := s.ownedComment(ctx, identity, id)
	if err != nil {
		return model.Comment{}, err
	}

	if patch.Comment != nil {
		comment.Comment = strings.TrimSpace(*patch.Comment)
	}
	if patch.Rating != nil {
		comment.Rating = patch.Rating
	}
	if err := validateComment(comment.Comment, comment.Rating); err != nil {
		return model.Comment{}, err
	}

	updated, err := s.comments.Update(ctx, comment)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.Comment{}, err
		}
		return model.Comment{}, fmt.Errorf("update comment: %w", err)
	}
	return updated, nil
}

func (s *CommentService) Delete(ctx context.Context, identity authsvc.Identity, id int64) error {
	if _, err := s.ownedComment(ctx, identity, id); err != nil {
		return err
	}

	if err := s.comments.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (s *CommentService) ownedComment(ctx context.Context, identity authsvc.Identity, id int64) (model.Comment, error) {
	if id <= 0 {
		return model.Comment{}, validationError("id must be a positive number")
	}

	comment, err := s.comments.GetActive(ctx, id)
	if err != nil {
		return model.Comment{}, err
	}
	if !authsvc.IsOwner(identity, comment) {
		return model.Comment{}, ErrForbidden
	}
	return comment, nil
}

func validateComment(text string, rating *int) error {
	if !rules.LengthBetween(text, rules.CommentMinLength, rules.CommentMaxLength) {
		return validationError(fmt.Sprintf("comment must be %d-%d characters", rules.CommentMinLength, rules.CommentMaxLength))
	}
	if rating != nil && !rules.ValidRating(*rating) {
		return validationError(fmt.Sprintf("rating must be between %d and %d", rules.RatingMin, rules.RatingMax))
	}
	return nil
}
