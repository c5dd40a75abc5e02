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

type PostFilter struct {
	Status   enums.PostStatus
	AuthorID int64
	Limit    int
	Offset   int
}

type PostStore interface {
	Create(ctx context.Context, post model.Post) (model.Post, error)
	GetByID(ctx context.Context, id int64) (model.Post, error)
	GetBySlug(ctx context.Context, slug string) (model.Post, error)
	List(ctx context.Context, filter PostFilter) ([]model.Post, error)
	Update(ctx context.Context, post model.Post) (model.Post, error)
}

type PostInput struct {
	Title      string
	Slug       string
	Content    string
	CoverImage string
	Status     enums.PostStatus
}

// PostPatch holds the fields a PUT may change; nil means unchanged.
type PostPatch struct {
	Title      *string
	Slug       *string
	Content    *string
	CoverImage *string
	Status     *enums.PostStatus
}

func (p PostPatch) empty() bool {
	return p.Title == nil && p.Slug == nil && p.Content == nil && p.CoverImage == nil && p.Status == nil
}

type PostService struct {
	posts PostStore
}

func NewPostService(posts PostStore) *PostService {
	return &PostService{posts: posts}
}

func (s *PostService) Create(ctx context.Context, identity authsvc.Identity, in PostInput) (model.Post, error) {
	if in.Status == "" {
		in.Status = enums.PostStatusDraft
	}
	post := model.Post{
		Title:      strings.TrimSpace(in.Title),
		Slug:       strings.TrimSpace(in.Slug),
		Content:    in.Content,
		CoverImage: strings.TrimSpace(in.CoverImage),
		AuthorID:   identity.UserID,
		Status:     in.Status,
	}
	if err := validatePost(post); err != nil {
		return model.Post{}, err
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return model.Post{}, err
		}
		return model.Post{}, fmt.Errorf("create post: %w", err)
	}
	return created, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (model.Post, error) {
	if id <= 0 {
		return model.Post{}, validationError("id must be a positive number")
	}
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) GetBySlug(ctx context.Context, slug string) (model.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return model.Post{}, validationError("slug is required")
	}
	return s.posts.GetBySlug(ctx, slug)
}

func (s *PostService) List(ctx context.Context, filter PostFilter) ([]model.Post, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, validationError("status must be draft, published or archived")
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	filter.Limit = rules.ClampLimit(filter.Limit)

	posts, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) Update(ctx context.Context, identity authsvc.Identity, id int64, patch PostPatch) (model.Post, error) {
	if patch.empty() {
		return model.Post{}, validationError("at least one field must be provided")
	}

	post, err := s.ownedPost(ctx, identity, id)
	if err != nil {
		return model.Post{}, err
	}

	if patch.Title != nil {
		post.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Slug != nil {
		post.Slug = strings.TrimSpace(*patch.Slug)
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	if patch.CoverImage != nil {
		post.CoverImage = strings.TrimSpace(*patch.CoverImage)
	}
	if patch.Status != nil {
		post.Status = *patch.Status
	}
	if err := validatePost(post); err != nil {
		return model.Post{}, err
	}

	updated, err := s.posts.Update(ctx, post)
	if err != nil {
		if errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound) {
			return model.Post{}, err
		}
		return model.Post{}, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

// Archive is the soft delete for posts.
func (s *PostService) Archive(ctx context.Context, identity authsvc.Identity, id int64) (model.Post, error) {
	archived := enums.PostStatusArchived
	return s.Update(ctx, identity, id, PostPatch{Status: &archived})
}

func (s *PostService) ownedPost(ctx context.Context, identity authsvc.Identity, id int64) (model.Post, error) {
	if id <= 0 {
		return model.Post{}, validationError("id must be a positive number")
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return model.Post{}, err
	}
	if !authsvc.IsOwner(identity, post) {
		return model.Post{}, ErrForbidden
	}
	return post, nil
}

func validatePost(post model.Post) error {
	switch {
	case post.Title == "" || post.Slug == "" || strings.TrimSpace(post.Content) == "":
		return validationError("title, slug and content are required")
	case !rules.LengthBetween(post.Title, 1, rules.PostTitleMaxLength):
		return validationError(fmt.Sprintf("title must be at most %d characters", rules.PostTitleMaxLength))
	case !rules.ValidSlug(post.Slug):
		return validationError("slug may contain only lowercase letters, digits and dashes")
	case !post.Status.Valid():
		return validationError("status must be draft, published or archived")
	}
	return nil
}
