package services

import (
	"context"
	"testing"

	"blog-backend/internal/errs"
	"blog-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUpvote_IsCappedPerUser(t *testing.T) {
	f := newFixture(t)
	ada := f.signup(t, "Ada", "ada@example.com")
	bob := f.signup(t, "Bob", "bob@example.com")
	ctx := context.Background()
	id := f.post(t, ada, "Upvote me", "body")

	first, err := f.upvotes.AddUpvote(ctx, bob, id)
	require.NoError(t, err)
	again, err := f.upvotes.AddUpvote(ctx, bob, id)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	n, err := f.upvotes.CountUpvotes(ctx, bob, id)
	require.NoError(t, err)
	assert.Equal(t, MaxUpvotesPerPost, n)

	n, err = f.upvotes.CountUpvotes(ctx, ada, id)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAddUpvote_Errors(t *testing.T) {
	f := newFixture(t)
	bob := f.signup(t, "Bob", "bob@example.com")
	ctx := context.Background()

	_, err := f.upvotes.AddUpvote(ctx, bob, "")
	assert.True(t, errs.Is(err, errs.KindValidation))

	_, err = f.upvotes.AddUpvote(ctx, bob, "missing-post")
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestRemoveUpvote(t *testing.T) {
	f := newFixture(t)
	ada := f.signup(t, "Ada", "ada@example.com")
	bob := f.signup(t, "Bob", "bob@example.com")
	ctx := context.Background()
	post := f.post(t, ada, "Upvote me", "body")
	other := f.post(t, ada, "Another", "body")

	up, err := f.upvotes.AddUpvote(ctx, bob, post)
	require.NoError(t, err)

	tests := []struct {
		name   string
		userID string
		req    models.RemoveUpvoteRequest
		kind   errs.Kind
	}{
		{"missing upvote id", bob, models.RemoveUpvoteRequest{PostID: post}, errs.KindValidation},
		{"someone else's upvote", ada, models.RemoveUpvoteRequest{UpvoteID: up.ID}, errs.KindForbidden},
		{"wrong post", bob, models.RemoveUpvoteRequest{UpvoteID: up.ID, PostID: other}, errs.KindForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.upvotes.RemoveUpvote(ctx, tt.userID, tt.req)
			assert.True(t, errs.Is(err, tt.kind), "got %v", err)
		})
	}

	resp, err := f.upvotes.RemoveUpvote(ctx, bob, models.RemoveUpvoteRequest{UpvoteID: up.ID, PostID: post})
	require.NoError(t, err)
	assert.Equal(t, "Upvote deleted successfully", resp.Message)

	n, err := f.upvotes.CountUpvotes(ctx, bob, post)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBookmarks(t *testing.T) {
	f := newFixture(t)
	ada := f.signup(t, "Ada", "ada@example.com")
	bob := f.signup(t, "Bob", "bob@example.com")
	ctx := context.Background()
	post := f.post(t, ada, "Keep this", "body")

	first, err := f.bookmarks.AddBookmark(ctx, bob, post)
	require.NoError(t, err)
	again, err := f.bookmarks.AddBookmark(ctx, bob, post)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = f.bookmarks.AddBookmark(ctx, bob, "missing-post")
	assert.True(t, errs.Is(err, errs.KindNotFound))

	list, err := f.bookmarks.ListBookmarks(ctx, bob)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, post, list[0].ID)
	assert.Equal(t, "Ada", list[0].Author.Name)

	_, err = f.bookmarks.RemoveBookmark(ctx, ada, first.ID)
	assert.True(t, errs.Is(err, errs.KindForbidden))

	_, err = f.bookmarks.RemoveBookmark(ctx, bob, first.ID)
	require.NoError(t, err)

	list, err = f.bookmarks.ListBookmarks(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, list)
}
