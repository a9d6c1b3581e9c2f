package handlers

import (
	"net/http"
	"testing"

	"blog-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostLifecycle(t *testing.T) {
	s := newTestServer(t)
	ada := s.signup(t, "Ada", "ada@example.com")
	bob := s.signup(t, "Bob", "bob@example.com")
	id := s.createPost(t, ada, "Hello")

	var detail models.PostDetail
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/blog/"+id, bob, nil, &detail))
	assert.Equal(t, "Hello", detail.Title)
	assert.Equal(t, "Ada", detail.Author.Name)
	assert.Nil(t, detail.BookmarkID)

	var e errorBody
	status := s.do(t, http.MethodPut, "/api/v1/blog/", bob, map[string]string{"id": id, "title": "Hijacked"}, &e)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", e.Code)

	status = s.do(t, http.MethodPut, "/api/v1/blog/", ada, map[string]string{"id": "missing", "title": "x"}, &e)
	assert.Equal(t, http.StatusNotFound, status)

	var res models.IDResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPut, "/api/v1/blog/", ada, map[string]string{"id": id, "content": "edited"}, &res))
	assert.Equal(t, id, res.ID)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/blog/"+id, bob, nil, &detail))
	assert.Equal(t, "Hello", detail.Title)
	assert.Equal(t, "edited", detail.Content)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/api/v1/blog/"+id, bob, nil, &e))

	var msg models.MessageResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/v1/blog/"+id, ada, nil, &msg))
	assert.NotEmpty(t, msg.Message)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/blog/"+id, bob, nil, &e))
}

func TestCreatePost_Validation(t *testing.T) {
	s := newTestServer(t)
	ada := s.signup(t, "Ada", "ada@example.com")

	var e errorBody
	status := s.do(t, http.MethodPost, "/api/v1/blog/", ada, map[string]string{"title": "", "content": "x"}, &e)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, e.Fields, "title")
}

func TestBulkListing(t *testing.T) {
	s := newTestServer(t)
	ada := s.signup(t, "Ada", "ada@example.com")
	bob := s.signup(t, "Bob", "bob@example.com")
	adaID := s.me(t, ada)

	s.createPost(t, ada, "one")
	s.createPost(t, ada, "two")
	s.createPost(t, bob, "three")

	var page models.PostPage
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/blog/bulk?page=1&pageSize=2", "", nil, &page))
	assert.Len(t, page.Posts, 2)
	assert.Equal(t, 2, page.PageSize)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/blog/bulk?page=2&pageSize=2", "", nil, &page))
	assert.Len(t, page.Posts, 1)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/blog/bulk/"+adaID, "", nil, &page))
	assert.Len(t, page.Posts, 2)
	assert.Equal(t, 1, page.Page)
	for _, p := range page.Posts {
		require.NotNil(t, p.Author)
		assert.Equal(t, "Ada", p.Author.Name)
	}

	var authored models.AuthoredPostPage
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/blog/bulkUser/"+adaID, "", nil, &authored))
	assert.Len(t, authored.Posts, 2)
}

func TestSearch(t *testing.T) {
	s := newTestServer(t)
	ada := s.signup(t, "Ada Lovelace", "ada@example.com")
	s.createPost(t, ada, "Analytical engine")

	var res models.SearchResult
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/blog/search?keyword=lovelace", "", nil, &res))
	require.Len(t, res.Posts, 1)
	assert.Equal(t, "Analytical engine", res.Posts[0].Title)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "Ada Lovelace", res.Users[0].Name)

	var e errorBody
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/blog/search", "", nil, &e))
	assert.Equal(t, "validation", e.Code)
}

func TestUnknownRouteUsesErrorShape(t *testing.T) {
	s := newTestServer(t)

	var e errorBody
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/nothing/here", "", nil, &e))
	assert.Equal(t, "not_found", e.Code)
}
