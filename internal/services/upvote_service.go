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

// MaxUpvotesPerPost is how many upvotes one user may hold on one post.
const MaxUpvotesPerPost = 1

type UpvoteService struct {
	upvotes repositories.UpvoteRepository
	now     func() time.Time
}

func NewUpvoteService(upvotes repositories.UpvoteRepository) *UpvoteService {
	return &UpvoteService{upvotes: upvotes, now: time.Now}
}

// CountUpvotes returns how many upvotes userID has placed on postID.
func (s *UpvoteService) CountUpvotes(ctx context.Context, userID, postID string) (int, error) {
	if userID == "" || strings.TrimSpace(postID) == "" {
		return 0, errs.Validation("Inputs incorrect", nil)
	}
	n, err := s.upvotes.Count(ctx, userID, postID)
	if err != nil {
		return 0, errs.Internal(err)
	}
	return n, nil
}

// AddUpvote records an upvote. Once the user holds MaxUpvotesPerPost upvotes on
// the post, the existing upvote id is returned instead of a new one.
func (s *UpvoteService) AddUpvote(ctx context.Context, userID, postID string) (*models.IDResponse, error) {
	if userID == "" || strings.TrimSpace(postID) == "" {
		return nil, errs.Validation("Inputs incorrect", map[string]string{"blogId": "blogId is required"})
	}

	n, err := s.upvotes.Count(ctx, userID, postID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if n >= MaxUpvotesPerPost {
		existing, err := s.upvotes.FindByUserAndPost(ctx, userID, postID)
		if err == nil {
			return &models.IDResponse{ID: existing.ID}, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, errs.Internal(err)
		}
	}

	upvote, err := s.upvotes.Create(ctx, &models.Upvote{
		ID:        uuid.New().String(),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, storeError(err, "post not found")
	}
	return &models.IDResponse{ID: upvote.ID}, nil
}

// RemoveUpvote deletes the upvote only when it belongs to userID and, if given,
// to req.PostID.
func (s *UpvoteService) RemoveUpvote(ctx context.Context, userID string, req models.RemoveUpvoteRequest) (*models.MessageResponse, error) {
	if userID == "" || strings.TrimSpace(req.UpvoteID) == "" {
		return nil, errs.Validation("Inputs incorrect", map[string]string{"upvoteId": "upvoteId is required"})
	}

	err := s.upvotes.Delete(ctx, req.UpvoteID, userID, req.PostID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, errs.Forbidden("upvote does not belong to user")
	}
	if err != nil {
		return nil, errs.Internal(err)
	}
	return &models.MessageResponse{Message: "Upvote deleted successfully"}, nil
}
