// Package repositories persists users, posts and engagement rows in PostgreSQL.
package repositories

import (
	"context"
	"errors"

	"blog-backend/internal/models"
	"blog-backend/internal/query"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	// Create returns ErrDuplicate when the email is taken
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// UpdateProfile overwrites the non-nil fields
	UpdateProfile(ctx context.Context, id string, name, bio, profilePic *string) (*models.User, error)
	Search(ctx context.Context, q query.UserQuery) ([]models.UserSummary, error)
}

// PostChanges holds the columns an update overwrites; nil fields are left as they are
type PostChanges struct {
	Title    *string
	Slug     *string
	Content  *string
	ImageURL *string
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id string) (*models.Post, error)
	// Update and Delete only touch a post owned by authorID and return ErrNotFound otherwise
	Update(ctx context.Context, id, authorID string, changes PostChanges) (*models.Post, error)
	Delete(ctx context.Context, id, authorID string) error
	Find(ctx context.Context, q query.PostQuery) ([]models.PostSummary, error)
	Detail(ctx context.Context, id string) (*models.PostDetail, error)
	Engagement(ctx context.Context, postIDs []string) (map[string]models.Engagement, error)
}

type UpvoteRepository interface {
	Count(ctx context.Context, userID, postID string) (int, error)
	FindByUserAndPost(ctx context.Context, userID, postID string) (*models.Upvote, error)
	// Create returns the existing row when the user already upvoted the post
	Create(ctx context.Context, upvote *models.Upvote) (*models.Upvote, error)
	// Delete matches postID only when it is non-empty
	Delete(ctx context.Context, id, userID, postID string) error
}

type BookmarkRepository interface {
	FindByUserAndPost(ctx context.Context, userID, postID string) (*models.Bookmark, error)
	// Create returns the existing row when the user already bookmarked the post
	Create(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error)
	ListPosts(ctx context.Context, userID string) ([]models.PostSummary, error)
	Delete(ctx context.Context, id, userID string) error
}

// PostgreSQL error codes
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
