package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Rudio1/api-meals/internal/domain/enums"
	"github.com/Rudio1/api-meals/internal/domain/model"
	"github.com/Rudio1/api-meals/internal/services/content"
)

type PostRepo struct {
	s *Store
}

func (r *PostRepo) Create(_ context.Context, post model.Post) (model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.posts {
		if existing.Slug == post.Slug {
			return model.Post{}, content.ErrConflict
		}
	}
	post.ID = r.s.id()
	post.CreatedAt = time.Now().UTC()
	post.UpdatedAt = post.CreatedAt
	r.s.posts[post.ID] = post
	return post, nil
}

func (r *PostRepo) GetByID(_ context.Context, id int64) (model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	post, ok := r.s.posts[id]
	if !ok {
		return model.Post{}, content.ErrNotFound
	}
	return post, nil
}

func (r *PostRepo) GetBySlug(_ context.Context, slug string) (model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, post := range r.s.posts {
		if post.Slug == slug {
			return post, nil
		}
	}
	return model.Post{}, content.ErrNotFound
}

func (r *PostRepo) List(_ context.Context, filter content.PostFilter) ([]model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := sortedIDs(r.s.posts)
	out := make([]model.Post, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		post := r.s.posts[ids[i]]
		if filter.Status != "" && post.Status != filter.Status {
			continue
		}
		if filter.AuthorID > 0 && post.AuthorID != filter.AuthorID {
			continue
		}
		out = append(out, post)
	}
	return page(out, filter.Limit, filter.Offset), nil
}

func (r *PostRepo) Update(_ context.Context, post model.Post) (model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[post.ID]; !ok {
		return model.Post{}, content.ErrNotFound
	}
	for id, existing := range r.s.posts {
		if id != post.ID && existing.Slug == post.Slug {
			return model.Post{}, content.ErrConflict
		}
	}
	post.UpdatedAt = time.Now().UTC()
	r.s.posts[post.ID] = post
	return post, nil
}

type CommentRepo struct {
	s *Store
}

func (r *CommentRepo) Create(_ context.Context, comment model.Comment) (model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.comments {
		if existing.PostID == comment.PostID && existing.UserID == comment.UserID && existing.Status != enums.CommentStatusDeleted {
			return model.Comment{}, content.ErrConflict
		}
	}
	comment.ID = r.s.id()
	comment.CreatedAt = time.Now().UTC()
	comment.UpdatedAt = comment.CreatedAt
	r.s.comments[comment.ID] = comment
	return comment, nil
}

func (r *CommentRepo) GetActive(_ context.Context, id int64) (model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comment, ok := r.s.comments[id]
	if !ok || comment.Status == enums.CommentStatusDeleted {
		return model.Comment{}, content.ErrNotFound
	}
	return comment, nil
}

func (r *CommentRepo) ListByPost(_ context.Context, postID int64) ([]model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []model.Comment{}
	for _, id := range sortedIDs(r.s.comments) {
		comment := r.s.comments[id]
		if comment.PostID == postID && comment.Status != enums.CommentStatusDeleted {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (r *CommentRepo) Update(_ context.Context, comment model.Comment) (model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.comments[comment.ID]
	if !ok || existing.Status == enums.CommentStatusDeleted {
		return model.Comment{}, content.ErrNotFound
	}
	comment.UpdatedAt = time.Now().UTC()
	r.s.comments[comment.ID] = comment
	return comment, nil
}

// SoftDelete also retires the comment's replies.
func (r *CommentRepo) SoftDelete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comment, ok := r.s.comments[id]
	if !ok || comment.Status == enums.CommentStatusDeleted {
		return content.ErrNotFound
	}
	now := time.Now().UTC()
	comment.Status = enums.CommentStatusDeleted
	comment.UpdatedAt = now
	r.s.comments[id] = comment

	for replyID, reply := range r.s.replies {
		if reply.CommentID == id && reply.Status != enums.CommentStatusDeleted {
			reply.Status = enums.CommentStatusDeleted
			reply.UpdatedAt = now
			r.s.replies[replyID] = reply
		}
	}
	return nil
}

type ReplyRepo struct {
	s *Store
}

func (r *ReplyRepo) Create(_ context.Context, reply model.Reply) (model.Reply, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reply.ID = r.s.id()
	reply.CreatedAt = time.Now().UTC()
	reply.UpdatedAt = reply.CreatedAt
	r.s.replies[reply.ID] = reply
	return reply, nil
}

func (r *ReplyRepo) GetActive(_ context.Context, id int64) (model.Reply, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reply, ok := r.s.replies[id]
	if !ok || reply.Status == enums.CommentStatusDeleted {
		return model.Reply{}, content.ErrNotFound
	}
	return reply, nil
}

func (r *ReplyRepo) ListByComment(_ context.Context, commentID int64) ([]model.Reply, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []model.Reply{}
	for _, id := range sortedIDs(r.s.replies) {
		reply := r.s.replies[id]
		if reply.CommentID == commentID && reply.Status != enums.CommentStatusDeleted {
			out = append(out, reply)
		}
	}
	return out, nil
}

func (r *ReplyRepo) Update(_ context.Context, reply model.Reply) (model.Reply, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.replies[reply.ID]
	if !ok || existing.Status == enums.CommentStatusDeleted {
		return model.Reply{}, content.ErrNotFound
	}
	reply.UpdatedAt = time.Now().UTC()
	r.s.replies[reply.ID] = reply
	return reply, nil
}

func (r *ReplyRepo) SoftDelete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reply, ok := r.s.replies[id]
	if !ok || reply.Status == enums.CommentStatusDeleted {
		return content.ErrNotFound
	}
	reply.Status = enums.CommentStatusDeleted
	reply.UpdatedAt = time.Now().UTC()
	r.s.replies[id] = reply
	return nil
}

func (r *ReplyRepo) CommentTarget(_ context.Context, commentID int64) (model.CommentTarget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comment, ok := r.s.comments[commentID]
	if !ok || comment.Status == enums.CommentStatusDeleted {
		return model.CommentTarget{}, content.ErrNotFound
	}
	return model.CommentTarget{
		CommentID:     comment.ID,
		CommentStatus: comment.Status,
		PostStatus:    r.s.posts[comment.PostID].Status,
	}, nil
}

type MealRepo struct {
	s *Store
}

func (r *MealRepo) Create(_ context.Context, meal model.Meal) (model.Meal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	meal.ID = r.s.id()
	meal.TypeName = r.s.types[meal.TypeID].Name
	meal.CreatedAt = time.Now().UTC()
	r.s.meals[meal.ID] = meal
	return meal, nil
}

func (r *MealRepo) GetByID(_ context.Context, id int64) (model.Meal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	meal, ok := r.s.meals[id]
	if !ok {
		return model.Meal{}, content.ErrNotFound
	}
	return meal, nil
}

func (r *MealRepo) ListByUser(_ context.Context, userID int64, limit, offset int) ([]model.Meal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []model.Meal{}
	for _, id := range sortedIDs(r.s.meals) {
		if meal := r.s.meals[id]; meal.UserID == userID {
			out = append(out, meal)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateTime.After(out[j].DateTime) })
	return page(out, limit, offset), nil
}

func (r *MealRepo) Update(_ context.Context, meal model.Meal) (model.Meal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.meals[meal.ID]; !ok {
		return model.Meal{}, content.ErrNotFound
	}
	meal.TypeName = r.s.types[meal.TypeID].Name
	r.s.meals[meal.ID] = meal
	return meal, nil
}

func (r *MealRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.meals[id]; !ok {
		return content.ErrNotFound
	}
	delete(r.s.meals, id)
	return nil
}

type MealTypeRepo struct {
	s *Store
}

func (r *MealTypeRepo) List(_ context.Context) ([]model.MealType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]model.MealType, 0, len(r.s.types))
	for _, id := range sortedIDs(r.s.types) {
		out = append(out, r.s.types[id])
	}
	return out, nil
}

func (r *MealTypeRepo) GetByID(_ context.Context, id int64) (model.MealType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	mealType, ok := r.s.types[id]
	if !ok {
		return model.MealType{}, content.ErrNotFound
	}
	return mealType, nil
}

func (r *MealTypeRepo) Create(_ context.Context, name string) (model.MealType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.types {
		if existing.Name == name {
			return model.MealType{}, content.ErrConflict
		}
	}
	mealType := model.MealType{ID: r.s.id(), Name: name}
	r.s.types[mealType.ID] = mealType
	return mealType, nil
}

func (r *MealTypeRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.types[id]; !ok {
		return content.ErrNotFound
	}
	for _, meal := range r.s.meals {
		if meal.TypeID == id {
			return content.ErrConflict
		}
	}
	delete(r.s.types, id)
	return nil
}
