package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rudio1/api-meals/internal/domain/enums"
	"github.com/Rudio1/api-meals/internal/domain/model"
	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
	"github.com/Rudio1/api-meals/internal/services/content"
)

func TestSessionsRequireAccountAndAreOnlySuperseded(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	now := time.Now().UTC()

	err := store.Sessions().Put(ctx, authsvc.SessionRecord{UserID: 42, RefreshToken: "r", ExpiresAt: now.Add(time.Hour)})
	require.ErrorIs(t, err, authsvc.ErrAccountNotFound)

	live, err := store.Accounts().Create(ctx, authsvc.NewAccount{Name: "Live", Email: "live@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	stale, err := store.Accounts().Create(ctx, authsvc.NewAccount{Name: "Stale", Email: "stale@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	require.NoError(t, store.Sessions().Put(ctx, authsvc.SessionRecord{UserID: live.ID, RefreshToken: "a", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.Sessions().Put(ctx, authsvc.SessionRecord{UserID: stale.ID, RefreshToken: "b", ExpiresAt: now.Add(-time.Minute)}))

	expired, err := store.Sessions().Get(ctx, stale.ID)
	require.NoError(t, err, "expired sessions stay stored until the next login")
	assert.Equal(t, "b", expired.RefreshToken)

	require.NoError(t, store.Sessions().Put(ctx, authsvc.SessionRecord{UserID: stale.ID, RefreshToken: "c", ExpiresAt: now.Add(time.Hour)}))
	replaced, err := store.Sessions().Get(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, "c", replaced.RefreshToken)

	session, err := store.Sessions().Get(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", session.RefreshToken)
}

func TestAccountsUniqueEmailAndAdminFlag(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	account, err := store.Accounts().Create(ctx, authsvc.NewAccount{Name: "A", Email: "a@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = store.Accounts().Create(ctx, authsvc.NewAccount{Name: "B", Email: "a@example.com", PasswordHash: "h"})
	require.True(t, errors.Is(err, authsvc.ErrEmailTaken))

	assert.True(t, store.SetAdmin(account.ID, true))
	assert.False(t, store.SetAdmin(account.ID+100, true))

	found, err := store.Accounts().FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, found.IsAdmin)
}

func TestCommentSoftDeleteRetiresReplies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	post, err := store.Posts().Create(ctx, model.Post{Title: "t", Slug: "t", Content: "c", AuthorID: 1, Status: enums.PostStatusPublished})
	require.NoError(t, err)
	comment, err := store.Comments().Create(ctx, model.Comment{PostID: post.ID, UserID: 2, Comment: "nice", Status: enums.CommentStatusActive})
	require.NoError(t, err)
	reply, err := store.Replies().Create(ctx, model.Reply{CommentID: comment.ID, UserID: 1, Reply: "thanks", Status: enums.CommentStatusActive})
	require.NoError(t, err)

	require.NoError(t, store.Comments().SoftDelete(ctx, comment.ID))

	_, err = store.Replies().GetActive(ctx, reply.ID)
	require.ErrorIs(t, err, content.ErrNotFound)
	_, err = store.Replies().CommentTarget(ctx, comment.ID)
	require.ErrorIs(t, err, content.ErrNotFound)
	require.ErrorIs(t, store.Comments().SoftDelete(ctx, comment.ID), content.ErrNotFound)
}

func TestMealsListedNewestFirstWithPaging(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	lunch, err := store.MealTypes().Create(ctx, "Lunch")
	require.NoError(t, err)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := store.Meals().Create(ctx, model.Meal{UserID: 1, TypeID: lunch.ID, Description: "soup", DateTime: base.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}

	page, err := store.Meals().ListByUser(ctx, 1, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.True(t, page[0].DateTime.After(page[1].DateTime))
	assert.Equal(t, "Lunch", page[0].TypeName)

	rest, err := store.Meals().ListByUser(ctx, 1, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
