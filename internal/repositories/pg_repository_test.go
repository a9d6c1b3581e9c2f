package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"blog-backend/internal/db"
	"blog-backend/internal/models"
	"blog-backend/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPool connects to DATABASE_URL and skips the test when it is unset.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.Connect(ctx, url, db.PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, db.Migrate(ctx, pool))
	return pool
}

// seedUser inserts a user that is removed, with everything it owns, when the test ends.
func seedUser(t *testing.T, pool *pgxpool.Pool, name string) *models.User {
	t.Helper()
	u := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, NewUserRepository(pool).Create(context.Background(), u))
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, u.ID)
	})
	return u
}

func seedPost(t *testing.T, pool *pgxpool.Pool, authorID, title string) *models.Post {
	t.Helper()
	p := &models.Post{
		ID:          uuid.New().String(),
		Title:       title,
		Slug:        title,
		Content:     "body of " + title,
		AuthorID:    authorID,
		PublishedAt: time.Now().UTC(),
		Published:   true,
	}
	require.NoError(t, NewPostRepository(pool).Create(context.Background(), p))
	return p
}

func TestPG_UserDuplicateAndPartialUpdate(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	users := NewUserRepository(pool)
	ada := seedUser(t, pool, "Ada")

	dup := *ada
	dup.ID = uuid.New().String()
	assert.ErrorIs(t, users.Create(ctx, &dup), ErrDuplicate)

	bio := "mathematician"
	got, err := users.UpdateProfile(ctx, ada.ID, nil, &bio, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "mathematician", got.Bio)

	_, err = users.UpdateProfile(ctx, uuid.New().String(), nil, &bio, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPG_PostUpdateKeepsOmittedColumns(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	posts := NewPostRepository(pool)
	ada := seedUser(t, pool, "Ada")
	bob := seedUser(t, pool, "Bob")
	post := seedPost(t, pool, ada.ID, "draft")

	title := "final"
	_, err := posts.Update(ctx, post.ID, bob.ID, PostChanges{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := posts.Update(ctx, post.ID, ada.ID, PostChanges{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, post.Content, got.Content)
	assert.Equal(t, post.Slug, got.Slug)

	found, err := posts.Find(ctx, query.BuildAuthoredPostsQuery(ada.ID, 1, 10))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, post.ID, found[0].ID)

	assert.ErrorIs(t, posts.Delete(ctx, post.ID, bob.ID), ErrNotFound)
	assert.NoError(t, posts.Delete(ctx, post.ID, ada.ID))
}

func TestPG_UpvoteCreateIsIdempotent(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	upvotes := NewUpvoteRepository(pool)
	ada := seedUser(t, pool, "Ada")
	bob := seedUser(t, pool, "Bob")
	post := seedPost(t, pool, ada.ID, "engines")
	other := seedPost(t, pool, ada.ID, "notes")

	first, err := upvotes.Create(ctx, &models.Upvote{ID: uuid.New().String(), UserID: bob.ID, PostID: post.ID, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	again, err := upvotes.Create(ctx, &models.Upvote{ID: uuid.New().String(), UserID: bob.ID, PostID: post.ID, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	n, err := upvotes.Count(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = upvotes.Create(ctx, &models.Upvote{ID: uuid.New().String(), UserID: bob.ID, PostID: uuid.New().String(), CreatedAt: time.Now().UTC()})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, upvotes.Delete(ctx, first.ID, ada.ID, ""), ErrNotFound)
	assert.ErrorIs(t, upvotes.Delete(ctx, first.ID, bob.ID, other.ID), ErrNotFound)
	assert.NoError(t, upvotes.Delete(ctx, first.ID, bob.ID, ""))
}

func TestPG_BookmarksAndDetail(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	bookmarks := NewBookmarkRepository(pool)
	ada := seedUser(t, pool, "Ada")
	bob := seedUser(t, pool, "Bob")
	post := seedPost(t, pool, ada.ID, "engines")

	first, err := bookmarks.Create(ctx, &models.Bookmark{ID: uuid.New().String(), UserID: bob.ID, PostID: post.ID, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	again, err := bookmarks.Create(ctx, &models.Bookmark{ID: uuid.New().String(), UserID: bob.ID, PostID: post.ID, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	listed, err := bookmarks.ListPosts(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, post.ID, listed[0].ID)

	detail, err := NewPostRepository(pool).Detail(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.EngagementRef{{ID: first.ID, UserID: bob.ID}}, detail.Bookmarks)
	assert.Empty(t, detail.Upvotes)

	assert.ErrorIs(t, bookmarks.Delete(ctx, first.ID, ada.ID), ErrNotFound)
	assert.NoError(t, bookmarks.Delete(ctx, first.ID, bob.ID))
}
