package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blog-backend/internal/repositories/memory"
	"blog-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app   *fiber.App
	hub   *FeedHub
	store *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	tokens := services.NewTokenService("test-secret", time.Hour)
	hub := NewFeedHub()

	posts := services.NewPostService(store.Posts(), store.Users(), store.Bookmarks(), hub)
	posts.SetShuffler(services.NoShuffle)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	Register(app, Services{
		Tokens:    tokens,
		Users:     services.NewUserService(store.Users(), tokens),
		Posts:     posts,
		Upvotes:   services.NewUpvoteService(store.Upvotes()),
		Bookmarks: services.NewBookmarkService(store.Bookmarks()),
		Feed:      hub,
	})
	return &testServer{app: app, hub: hub, store: store}
}

// do sends a JSON request and decodes the JSON response into out when out is not nil.
func (s *testServer) do(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *testServer) signup(t *testing.T, name, email string) string {
	t.Helper()
	var res struct {
		JWT string `json:"jwt"`
	}
	status := s.do(t, http.MethodPost, "/api/v1/user/signup", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	}, &res)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, res.JWT)
	return res.JWT
}

func (s *testServer) me(t *testing.T, token string) string {
	t.Helper()
	var me struct {
		ID string `json:"id"`
	}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/user/me", token, nil, &me))
	return me.ID
}

func (s *testServer) createPost(t *testing.T, token, title string) string {
	t.Helper()
	var res struct {
		ID string `json:"id"`
	}
	status := s.do(t, http.MethodPost, "/api/v1/blog/", token, map[string]string{
		"title": title, "content": "body of " + title,
	}, &res)
	require.Equal(t, http.StatusOK, status)
	return res.ID
}

type errorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
}
