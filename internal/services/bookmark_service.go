package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"blog-backend/internal/errs"
	"blog-backend/internal/models"
	"blog-backend/internal/repositories"

	"github.com/google/uuid"
)

type BookmarkService struct {
	bookmarks repositories.BookmarkRepository
	now       func() time.Time
}

func NewBookmarkService(bookmarks repositories.BookmarkRepository) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks, now: time.Now}
}

// AddBookmark is idempotent: bookmarking twice returns the first bookmark id.
func (s *BookmarkService) AddBookmark(ctx context.Context, userID, postID string) (*models.IDResponse, error) {
	if userID == "" || strings.TrimSpace(postID) == "" {
		return nil, errs.Validation("Inputs incorrect", map[string]string{"blogId": "blogId is required"})
	}

	bm, err := s.bookmarks.Create(ctx, &models.Bookmark{
		ID:        uuid.New().String(),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, storeError(err, "post not found")
	}
	return &models.IDResponse{ID: bm.ID}, nil
}

// ListBookmarks returns userID's bookmarked posts, most recent bookmark first.
func (s *BookmarkService) ListBookmarks(ctx context.Context, userID string) ([]models.PostSummary, error) {
	posts, err := s.bookmarks.ListPosts(ctx, userID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return posts, nil
}

func (s *BookmarkService) RemoveBookmark(ctx context.Context, userID, bookmarkID string) (*models.MessageResponse, error) {
	if strings.TrimSpace(bookmarkID) == "" {
		return nil, errs.Validation("bookmark id is required", map[string]string{"id": "id is required"})
	}

	err := s.bookmarks.Delete(ctx, bookmarkID, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, errs.Forbidden("bookmark does not belong to user")
	}
	if err != nil {
		return nil, errs.Internal(err)
	}
	return &models.MessageResponse{Message: "Bookmark deleted successfully"}, nil
}
