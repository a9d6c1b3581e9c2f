package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blog-backend/internal/db"
	"blog-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type upvoteRepository struct {
	db db.DBTX
}

func NewUpvoteRepository(conn db.DBTX) UpvoteRepository {
	return &upvoteRepository{db: conn}
}

func (r *upvoteRepository) Count(ctx context.Context, userID, postID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM upvotes WHERE user_id = $1 AND post_id = $2`, userID, postID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count upvotes: %w", err)
	}
	return n, nil
}

func (r *upvoteRepository) FindByUserAndPost(ctx context.Context, userID, postID string) (*models.Upvote, error) {
	var u models.Upvote
	err := r.db.QueryRow(ctx, `SELECT id, user_id, post_id, created_at FROM upvotes WHERE user_id = $1 AND post_id = $2`, userID, postID).
		Scan(&u.ID, &u.UserID, &u.PostID, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find upvote: %w", err)
	}
	return &u, nil
}

func (r *upvoteRepository) Create(ctx context.Context, upvote *models.Upvote) (*models.Upvote, error) {
	query := `INSERT INTO upvotes (id, user_id, post_id, created_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, post_id) DO NOTHING
		RETURNING id`
	var id string
	err := r.db.QueryRow(ctx, query, upvote.ID, upvote.UserID, upvote.PostID, upvote.CreatedAt).Scan(&id)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// Lost the race to a concurrent upvote by the same user
		return r.FindByUserAndPost(ctx, upvote.UserID, upvote.PostID)
	case pgCode(err) == foreignKeyViolation:
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("insert upvote: %w", err)
	}
	created := *upvote
	return &created, nil
}

func (r *upvoteRepository) Delete(ctx context.Context, id, userID, postID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM upvotes WHERE id = $1 AND user_id = $2 AND ($3::text = '' OR post_id = $3)`, id, userID, postID)
	if err != nil {
		return fmt.Errorf("delete upvote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type bookmarkRepository struct {
	db db.DBTX
}

func NewBookmarkRepository(conn db.DBTX) BookmarkRepository {
	return &bookmarkRepository{db: conn}
}

func (r *bookmarkRepository) FindByUserAndPost(ctx context.Context, userID, postID string) (*models.Bookmark, error) {
	var b models.Bookmark
	err := r.db.QueryRow(ctx, `SELECT id, user_id, post_id, created_at FROM bookmarks WHERE user_id = $1 AND post_id = $2`, userID, postID).
		Scan(&b.ID, &b.UserID, &b.PostID, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find bookmark: %w", err)
	}
	return &b, nil
}

func (r *bookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	query := `INSERT INTO bookmarks (id, user_id, post_id, created_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, post_id) DO NOTHING
		RETURNING id`
	var id string
	err := r.db.QueryRow(ctx, query, bookmark.ID, bookmark.UserID, bookmark.PostID, bookmark.CreatedAt).Scan(&id)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return r.FindByUserAndPost(ctx, bookmark.UserID, bookmark.PostID)
	case pgCode(err) == foreignKeyViolation:
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("insert bookmark: %w", err)
	}
	created := *bookmark
	return &created, nil
}

func (r *bookmarkRepository) ListPosts(ctx context.Context, userID string) ([]models.PostSummary, error) {
	query := `SELECT p.id, p.title, p.content, p.image_url, p.published_at, p.published,
			u.id, u.name, u.email, u.bio, u.profile_pic
		FROM bookmarks b
		JOIN posts p ON p.id = b.post_id
		JOIN users u ON u.id = p.author_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarked posts: %w", err)
	}
	defer rows.Close()

	posts := []models.PostSummary{}
	for rows.Next() {
		s := models.PostSummary{Author: &models.Author{}}
		publishedAt, published := new(time.Time), new(bool)
		if err := rows.Scan(&s.ID, &s.Title, &s.Content, &s.ImageURL, publishedAt, published,
			&s.Author.ID, &s.Author.Name, &s.Author.Email, &s.Author.Details, &s.Author.ProfilePic); err != nil {
			return nil, err
		}
		s.PublishedDate, s.Published = publishedAt, published
		posts = append(posts, s)
	}
	return posts, rows.Err()
}

func (r *bookmarkRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookmarks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
