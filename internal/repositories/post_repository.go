package repositories

import (
	"context"
	"errors"
	"fmt"

	"blog-backend/internal/db"
	"blog-backend/internal/models"
	"blog-backend/internal/query"

	"github.com/jackc/pgx/v5"
)

const postColumnsSQL = `id, title, slug, content, image_url, author_id, published_at, published`

type postRepository struct {
	db db.DBTX
}

func NewPostRepository(conn db.DBTX) PostRepository {
	return &postRepository{db: conn}
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.ImageURL, &p.AuthorID, &p.PublishedAt, &p.Published)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	stmt := `INSERT INTO posts (` + postColumnsSQL + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, stmt, post.ID, post.Title, post.Slug, post.Content, post.ImageURL, post.AuthorID, post.PublishedAt, post.Published)
	if pgCode(err) == foreignKeyViolation {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	return scanPost(r.db.QueryRow(ctx, `SELECT `+postColumnsSQL+` FROM posts WHERE id = $1`, id))
}

func (r *postRepository) Update(ctx context.Context, id, authorID string, changes PostChanges) (*models.Post, error) {
	stmt := `UPDATE posts SET
			title = COALESCE($3, title),
			slug = COALESCE($4, slug),
			content = COALESCE($5, content),
			image_url = COALESCE($6, image_url)
		WHERE id = $1 AND author_id = $2
		RETURNING ` + postColumnsSQL
	return scanPost(r.db.QueryRow(ctx, stmt, id, authorID, changes.Title, changes.Slug, changes.Content, changes.ImageURL))
}

func (r *postRepository) Delete(ctx context.Context, id, authorID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND author_id = $2`, id, authorID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) Find(ctx context.Context, q query.PostQuery) ([]models.PostSummary, error) {
	sql, args, err := RenderPostQuery(q)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer rows.Close()

	posts := []models.PostSummary{}
	for rows.Next() {
		var s models.PostSummary
		if err := rows.Scan(postScanDest(&s, q.Select)...); err != nil {
			return nil, err
		}
		posts = append(posts, s)
	}
	return posts, rows.Err()
}

func (r *postRepository) Detail(ctx context.Context, id string) (*models.PostDetail, error) {
	stmt := `SELECT p.id, p.title, p.slug, p.content, p.image_url, p.published_at, p.published,
			u.id, u.name, u.email, u.bio, u.profile_pic
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1`

	var d models.PostDetail
	err := r.db.QueryRow(ctx, stmt, id).Scan(
		&d.ID, &d.Title, &d.Slug, &d.Content, &d.ImageURL, &d.PublishedDate, &d.Published,
		&d.Author.ID, &d.Author.Name, &d.Author.Email, &d.Author.Details, &d.Author.ProfilePic,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("post detail: %w", err)
	}

	if d.Upvotes, err = r.refs(ctx, "upvotes", id); err != nil {
		return nil, err
	}
	if d.Bookmarks, err = r.refs(ctx, "bookmarks", id); err != nil {
		return nil, err
	}
	if d.Comments, err = r.refs(ctx, "comments", id); err != nil {
		return nil, err
	}
	d.UpvoteCount = len(d.Upvotes)

	return &d, nil
}

// refs lists (id, user_id) pairs of an engagement table; table is always a constant
func (r *postRepository) refs(ctx context.Context, table, postID string) ([]models.EngagementRef, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id FROM `+table+` WHERE post_id = $1 ORDER BY created_at, id`, postID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	refs := []models.EngagementRef{}
	for rows.Next() {
		var ref models.EngagementRef
		if err := rows.Scan(&ref.ID, &ref.UserID); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *postRepository) Engagement(ctx context.Context, postIDs []string) (map[string]models.Engagement, error) {
	out := make(map[string]models.Engagement, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	stmt := `SELECT p.id,
			(SELECT COUNT(*) FROM upvotes WHERE post_id = p.id),
			(SELECT COUNT(*) FROM bookmarks WHERE post_id = p.id),
			(SELECT COUNT(*) FROM comments WHERE post_id = p.id)
		FROM posts p
		WHERE p.id = ANY($1)`
	rows, err := r.db.Query(ctx, stmt, postIDs)
	if err != nil {
		return nil, fmt.Errorf("post engagement: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var e models.Engagement
		if err := rows.Scan(&id, &e.Upvotes, &e.Bookmarks, &e.Comments); err != nil {
			return nil, err
		}
		out[id] = e
	}
	return out, rows.Err()
}
