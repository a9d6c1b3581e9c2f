package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"blog-backend/internal/models"
	"blog-backend/internal/repositories/memory"

	"github.com/stretchr/testify/require"
)

type recordingFeed struct {
	mu     sync.Mutex
	events []models.FeedEvent
}

func (f *recordingFeed) Publish(e models.FeedEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

func (f *recordingFeed) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Event)
	}
	return out
}

type fixture struct {
	store     *memory.Store
	tokens    *TokenService
	users     *UserService
	posts     *PostService
	upvotes   *UpvoteService
	bookmarks *BookmarkService
	feed      *recordingFeed
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tokens := NewTokenService("test-secret", time.Hour)
	feed := &recordingFeed{}

	f := &fixture{
		store:     store,
		tokens:    tokens,
		users:     NewUserService(store.Users(), tokens),
		posts:     NewPostService(store.Posts(), store.Users(), store.Bookmarks(), feed),
		upvotes:   NewUpvoteService(store.Upvotes()),
		bookmarks: NewBookmarkService(store.Bookmarks()),
		feed:      feed,
	}
	f.posts.SetShuffler(NoShuffle)

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f.posts.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return f
}

// signup registers a user and returns its id.
func (f *fixture) signup(t *testing.T, name, email string) string {
	t.Helper()
	resp, err := f.users.Signup(context.Background(), models.SignupRequest{Name: name, Email: email, Password: "secret123"})
	require.NoError(t, err)
	id, err := f.tokens.Verify(resp.JWT)
	require.NoError(t, err)
	return id
}

func (f *fixture) post(t *testing.T, authorID, title, content string) string {
	t.Helper()
	resp, err := f.posts.CreatePost(context.Background(), authorID, models.CreatePostRequest{Title: title, Content: content})
	require.NoError(t, err)
	return resp.ID
}
