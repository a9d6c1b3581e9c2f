package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blog-backend/internal/config"
	"blog-backend/internal/handlers"
	"blog-backend/internal/repositories/memory"
	"blog-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	store := memory.NewStore()
	tokens := services.NewTokenService("test-secret", time.Hour)
	feed := handlers.NewFeedHub()
	cfg := &config.Config{CORSOrigins: []string{"https://blog.example.com"}}

	return New(cfg, handlers.Services{
		Tokens:    tokens,
		Users:     services.NewUserService(store.Users(), tokens),
		Posts:     services.NewPostService(store.Posts(), store.Users(), store.Bookmarks(), feed),
		Upvotes:   services.NewUpvoteService(store.Upvotes()),
		Bookmarks: services.NewBookmarkService(store.Bookmarks()),
		Feed:      feed,
	})
}

func TestHealth(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp()

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/user/", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `route="/api/v1/user`)
}

func TestCORSOnAPI(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/", nil)
	req.Header.Set("Origin", "https://blog.example.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "https://blog.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}
