package handlers

import (
	"net/http"
	"testing"

	"blog-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpvoteRoutes(t *testing.T) {
	s := newTestServer(t)
	ada := s.signup(t, "Ada", "ada@example.com")
	bob := s.signup(t, "Bob", "bob@example.com")
	post := s.createPost(t, ada, "Vote")

	var first, second models.IDResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/upvote/", bob, map[string]string{"blogId": post}, &first))
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/upvote/", bob, map[string]string{"blogId": post}, &second))
	assert.Equal(t, first.ID, second.ID)

	var count models.UpvoteCountResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/upvote/"+post, bob, nil, &count))
	assert.Equal(t, 1, count.Upvotes)

	var e errorBody
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/upvote/", bob, map[string]string{}, &e))
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/v1/upvote/", bob, map[string]string{"blogId": "missing"}, &e))

	status := s.do(t, http.MethodDelete, "/api/v1/upvote/", ada, map[string]string{"upvoteId": first.ID, "postId": post}, &e)
	assert.Equal(t, http.StatusForbidden, status)

	var msg models.MessageResponse
	status = s.do(t, http.MethodDelete, "/api/v1/upvote/", bob, map[string]string{"upvoteId": first.ID, "postId": post}, &msg)
	require.Equal(t, http.StatusOK, status)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/upvote/"+post, bob, nil, &count))
	assert.Zero(t, count.Upvotes)
}

func TestBookmarkRoutes(t *testing.T) {
	s := newTestServer(t)
	ada := s.signup(t, "Ada", "ada@example.com")
	bob := s.signup(t, "Bob", "bob@example.com")
	post := s.createPost(t, ada, "Keep")

	var bm models.IDResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/bookmark/", bob, map[string]string{"blogId": post}, &bm))

	var detail models.PostDetail
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/blog/"+post, bob, nil, &detail))
	require.NotNil(t, detail.BookmarkID)
	assert.Equal(t, bm.ID, *detail.BookmarkID)

	var list struct {
		Payload []models.PostSummary `json:"payload"`
	}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/bookmark/", bob, nil, &list))
	require.Len(t, list.Payload, 1)
	assert.Equal(t, post, list.Payload[0].ID)

	var e errorBody
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/api/v1/bookmark/"+bm.ID, ada, nil, &e))

	var msg models.MessageResponse
	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/v1/bookmark/"+bm.ID, bob, nil, &msg))

	var after models.PostDetail
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/blog/"+post, bob, nil, &after))
	assert.Nil(t, after.BookmarkID)
}
