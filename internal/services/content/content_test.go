package content_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rudio1/api-meals/internal/domain/enums"
	"github.com/Rudio1/api-meals/internal/repo/memory"
	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
	"github.com/Rudio1/api-meals/internal/services/content"
)

var (
	alice = authsvc.Identity{UserID: 1, Email: "alice@example.com"}
	bob   = authsvc.Identity{UserID: 2, Email: "bob@example.com"}
	root  = authsvc.Identity{UserID: 3, Email: "root@example.com", IsAdmin: true}
)

type services struct {
	posts    *content.PostService
	comments *content.CommentService
	replies  *content.ReplyService
	meals    *content.MealService
}

func newServices() services {
	store := memory.NewStore()
	return services{
		posts:    content.NewPostService(store.Posts()),
		comments: content.NewCommentService(store.Comments(), store.Posts()),
		replies:  content.NewReplyService(store.Replies()),
		meals:    content.NewMealService(store.Meals(), store.MealTypes()),
	}
}

func ptr[T any](v T) *T { return &v }

func TestPostOwnership(t *testing.T) {
	svc := newServices()
	ctx := context.Background()

	post, err := svc.posts.Create(ctx, alice, content.PostInput{Title: "Hello", Slug: "hello", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, post.AuthorID)
	assert.Equal(t, enums.PostStatusDraft, post.Status)

	_, err = svc.posts.Update(ctx, bob, post.ID, content.PostPatch{Title: ptr("Hijacked")})
	require.ErrorIs(t, err, content.ErrForbidden)

	_, err = svc.posts.Update(ctx, root, post.ID, content.PostPatch{Title: ptr("Admin edit")})
	require.ErrorIs(t, err, content.ErrForbidden, "admins get no ownership exemption")

	unchanged, err := svc.posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", unchanged.Title)

	updated, err := svc.posts.Update(ctx, alice, post.ID, content.PostPatch{Title: ptr("Hello again")})
	require.NoError(t, err)
	assert.Equal(t, "Hello again", updated.Title)

	_, err = svc.posts.Archive(ctx, bob, post.ID)
	require.ErrorIs(t, err, content.ErrForbidden)

	archived, err := svc.posts.Archive(ctx, alice, post.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PostStatusArchived, archived.Status)
}

func TestPostValidation(t *testing.T) {
	svc := newServices()
	ctx := context.Background()

	tests := []struct {
		name string
		in   content.PostInput
	}{
		{name: "missing title", in: content.PostInput{Slug: "a", Content: "b"}},
		{name: "bad slug", in: content.PostInput{Title: "a", Slug: "Not A Slug", Content: "b"}},
		{name: "bad status", in: content.PostInput{Title: "a", Slug: "a", Content: "b", Status: "hidden"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.posts.Create(ctx, alice, tc.in)
			require.ErrorIs(t, err, content.ErrValidation)
		})
	}

	_, err := svc.posts.Create(ctx, alice, content.PostInput{Title: "One", Slug: "same", Content: "x"})
	require.NoError(t, err)
	_, err = svc.posts.Create(ctx, bob, content.PostInput{Title: "Two", Slug: "same", Content: "x"})
	require.ErrorIs(t, err, content.ErrConflict)

	_, err = svc.posts.Update(ctx, alice, 1, content.PostPatch{})
	require.ErrorIs(t, err, content.ErrValidation)

	_, err = svc.posts.Get(ctx, 999)
	require.ErrorIs(t, err, content.ErrNotFound)
}

func TestPostList(t *testing.T) {
	svc := newServices()
	ctx := context.Background()

	_, err := svc.posts.Create(ctx, alice, content.PostInput{Title: "A", Slug: "a", Content: "x", Status: enums.PostStatusPublished})
	require.NoError(t, err)
	_, err = svc.posts.Create(ctx, bob, content.PostInput{Title: "B", Slug: "b", Content: "x"})
	require.NoError(t, err)

	published, err := svc.posts.List(ctx, content.PostFilter{Status: enums.PostStatusPublished})
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "a", published[0].Slug)

	byBob, err := svc.posts.List(ctx, content.PostFilter{AuthorID: bob.UserID})
	require.NoError(t, err)
	require.Len(t, byBob, 1)

	_, err = svc.posts.List(ctx, content.PostFilter{Status: "bogus"})
	require.ErrorIs(t, err, content.ErrValidation)

	bySlug, err := svc.posts.GetBySlug(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, bob.UserID, bySlug.AuthorID)
}

func TestCommentLifecycle(t *testing.T) {
	svc := newServices()
	ctx := context.Background()

	draft, err := svc.posts.Create(ctx, alice, content.PostInput{Title: "Draft", Slug: "draft", Content: "x"})
	require.NoError(t, err)
	_, err = svc.comments.Create(ctx, bob, content.CommentInput{PostID: draft.ID, Comment: "nice post"})
	require.ErrorIs(t, err, content.ErrValidation, "drafts do not accept comments")

	post, err := svc.posts.Create(ctx, alice, content.PostInput{Title: "Live", Slug: "live", Content: "x", Status: enums.PostStatusPublished})
	require.NoError(t, err)

	_, err = svc.comments.Create(ctx, bob, content.CommentInput{PostID: post.ID, Comment: "ok", Rating: ptr(3)})
	require.ErrorIs(t, err, content.ErrValidation, "comment shorter than 3 characters")
	_, err = svc.comments.Create(ctx, bob, content.CommentInput{PostID: post.ID, Comment: "great", Rating: ptr(6)})
	require.ErrorIs(t, err, content.ErrValidation, "rating out of range")
	_, err = svc.comments.Create(ctx, bob, content.CommentInput{PostID: 999, Comment: "great"})
	require.ErrorIs(t, err, content.ErrNotFound)

	comment, err := svc.comments.Create(ctx, bob, content.CommentInput{PostID: post.ID, Comment: "  great post  ", Rating: ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, "great post", comment.Comment)
	assert.Equal(t, bob.UserID, comment.UserID)

	_, err = svc.comments.Create(ctx, bob, content.CommentInput{PostID: post.ID, Comment: "second try"})
	require.ErrorIs(t, err, content.ErrConflict, "one live comment per user per post")

	_, err = svc.comments.Update(ctx, alice, comment.ID, content.CommentPatch{Comment: ptr("edited by post author")})
	require.ErrorIs(t, err, content.ErrForbidden)
	require.ErrorIs(t, svc.comments.Delete(ctx, alice, comment.ID), content.ErrForbidden)

	updated, err := svc.comments.Update(ctx, bob, comment.ID, content.CommentPatch{Rating: ptr(4)})
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 4, *updated.Rating)

	require.NoError(t, svc.comments.Delete(ctx, bob, comment.ID))
	_, err = svc.comments.Get(ctx, comment.ID)
	require.ErrorIs(t, err, content.ErrNotFound)

	_, err = svc.comments.Create(ctx, bob, content.CommentInput{PostID: post.ID, Comment: "back again"})
	require.NoError(t, err, "a deleted comment frees the slot")
}

func TestReplyLifecycle(t *testing.T) {
	svc := newServices()
	ctx := context.Background()

	post, err := svc.posts.Create(ctx, alice, content.PostInput{Title: "Live", Slug: "live", Content: "x", Status: enums.PostStatusPublished})
	require.NoError(t, err)
	comment, err := svc.comments.Create(ctx, bob, content.CommentInput{PostID: post.ID, Comment: "great post"})
	require.NoError(t, err)

	_, err = svc.replies.Create(ctx, alice, comment.ID, "hi")
	require.ErrorIs(t, err, content.ErrValidation)

	reply, err := svc.replies.Create(ctx, alice, comment.ID, "thank you")
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, reply.UserID)

	_, err = svc.replies.Update(ctx, bob, reply.ID, "not mine")
	require.ErrorIs(t, err, content.ErrForbidden)

	edited, err := svc.replies.Update(ctx, alice, reply.ID, "thanks a lot")
	require.NoError(t, err)
	assert.Equal(t, "thanks a lot", edited.Reply)

	listed, err := svc.replies.ListByComment(ctx, comment.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	_, err = svc.posts.Archive(ctx, alice, post.ID)
	require.NoError(t, err)
	_, err = svc.replies.Create(ctx, alice, comment.ID, "after archive")
	require.ErrorIs(t, err, content.ErrValidation, "archived posts take no replies")

	require.ErrorIs(t, svc.replies.Delete(ctx, bob, reply.ID), content.ErrForbidden)
	require.NoError(t, svc.replies.Delete(ctx, alice, reply.ID))
	_, err = svc.replies.Get(ctx, reply.ID)
	require.ErrorIs(t, err, content.ErrNotFound)

	require.NoError(t, svc.comments.Delete(ctx, bob, comment.ID))
	_, err = svc.replies.Create(ctx, alice, comment.ID, "to a deleted comment")
	require.ErrorIs(t, err, content.ErrNotFound)
}

func TestMeals(t *testing.T) {
	svc := newServices()
	ctx := context.Background()

	lunch, err := svc.meals.CreateType(ctx, "Lunch")
	require.NoError(t, err)
	_, err = svc.meals.CreateType(ctx, "Lunch")
	require.ErrorIs(t, err, content.ErrConflict)
	_, err = svc.meals.CreateType(ctx, "  ")
	require.ErrorIs(t, err, content.ErrValidation)

	at := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	_, err = svc.meals.Create(ctx, alice, content.MealInput{TypeID: 999, Description: "soup", DateTime: at})
	require.ErrorIs(t, err, content.ErrValidation)

	meal, err := svc.meals.Create(ctx, alice, content.MealInput{TypeID: lunch.ID, Description: "soup", DateTime: at})
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, meal.UserID)
	assert.Equal(t, "Lunch", meal.TypeName)

	_, err = svc.meals.Get(ctx, bob, meal.ID)
	require.ErrorIs(t, err, content.ErrForbidden)
	_, err = svc.meals.Update(ctx, bob, meal.ID, content.MealPatch{Description: ptr("stolen")})
	require.ErrorIs(t, err, content.ErrForbidden)

	mine, err := svc.meals.ListMine(ctx, alice, 0, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	theirs, err := svc.meals.ListMine(ctx, bob, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	require.ErrorIs(t, svc.meals.DeleteType(ctx, lunch.ID), content.ErrConflict, "type still in use")
	require.ErrorIs(t, svc.meals.Delete(ctx, bob, meal.ID), content.ErrForbidden)
	require.NoError(t, svc.meals.Delete(ctx, alice, meal.ID))
	require.NoError(t, svc.meals.DeleteType(ctx, lunch.ID))
	require.ErrorIs(t, svc.meals.DeleteType(ctx, lunch.ID), content.ErrNotFound)
}
