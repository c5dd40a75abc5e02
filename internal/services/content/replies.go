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

type ReplyStore interface {
	Create(ctx context.Context, reply model.Reply) (model.Reply, error)
	GetActive(ctx context.Context, id int64) (model.Reply, error)
	ListByComment(ctx context.Context, commentID int64) ([]model.Reply, error)
	Update(ctx context.Context, reply model.Reply) (model.Reply, error)
	SoftDelete(ctx context.Context, id int64) error
	// CommentTarget returns ErrNotFound for missing or deleted comments.
	CommentTarget(ctx context.Context, commentID int64) (model.CommentTarget, error)
}

type ReplyService struct {
	replies ReplyStore
}

func NewReplyService(replies ReplyStore) *ReplyService {
	return &ReplyService{replies: replies}
}

func (s *ReplyService) Create(ctx context.Context, identity authsvc.Identity, commentID int64, text string) (model.Reply, error) {
	text = strings.TrimSpace(text)
	if commentID <= 0 || text == "" {
		return model.Reply{}, validationError("comment_id and reply are required")
	}
	if err := validateReply(text); err != nil {
		return model.Reply{}, err
	}

	target, err := s.replies.CommentTarget(ctx, commentID)
	if err != nil {
		return model.Reply{}, err
	}
	if target.CommentStatus != enums.CommentStatusActive {
		return model.Reply{}, validationError("inactive comments cannot be replied to")
	}
	if target.PostStatus != enums.PostStatusPublished {
		return model.Reply{}, validationError("comments on unpublished posts cannot be replied to")
	}

	created, err := s.replies.Create(ctx, model.Reply{
		CommentID: commentID,
		UserID:    identity.UserID,
		Reply:     text,
		Status:    enums.CommentStatusActive,
	})
	if err != nil {
		return model.Reply{}, fmt.Errorf("create reply: %w", err)
	}
	return created, nil
}

func (s *ReplyService) Get(ctx context.Context, id int64) (model.Reply, error) {
	if id <= 0 {
		return model.Reply{}, validationError("id must be a positive number")
	}
	return s.replies.GetActive(ctx, id)
}

func (s *ReplyService) ListByComment(ctx context.Context, commentID int64) ([]model.Reply, error) {
	if commentID <= 0 {
		return nil, validationError("comment_id must be a positive number")
	}
	if _, err := s.replies.CommentTarget(ctx, commentID); err != nil {
		return nil, err
	}

	replies, err := s.replies.ListByComment(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	return replies, nil
}

func (s *ReplyService) Update(ctx context.Context, identity authsvc.Identity, id int64, text string) (model.Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Reply{}, validationError("reply is required")
	}
	if err := validateReply(text); err != nil {
		return model.Reply{}, err
	}

	reply, err := s.ownedReply(ctx, identity, id)
	if err != nil {
		return model.Reply{}, err
	}
	reply.Reply = text

	updated, err := s.replies.Update(ctx, reply)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.Reply{}, err
		}
		return model.Reply{}, fmt.Errorf("update reply: %w", err)
	}
	return updated, nil
}

func (s *ReplyService) Delete(ctx context.Context, identity authsvc.Identity, id int64) error {
	if _, err := s.ownedReply(ctx, identity, id); err != nil {
		return err
	}

	if err := s.replies.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete reply: %w", err)
	}
	return nil
}

func (s *ReplyService) ownedReply(ctx context.Context, identity authsvc.Identity, id int64) (model.Reply, error) {
	if id <= 0 {
		return model.Reply{}, validationError("id must be a positive number")
	}

	reply, err := s.replies.GetActive(ctx, id)
	if err != nil {
		return model.Reply{}, err
	}
	if !authsvc.IsOwner(identity, reply) {
		return model.Reply{}, ErrForbidden
	}
	return reply, nil
}

func validateReply(text string) error {
	if !rules.LengthBetween(text, rules.ReplyMinLength, rules.ReplyMaxLength) {
		return validationError(fmt.Sprintf("reply must be %d-%d characters", rules.ReplyMinLength, rules.ReplyMaxLength))
	}
	return nil
}
