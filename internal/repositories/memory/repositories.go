package memory

import (
	"context"
	"sort"
	"time"

	"blog-backend/internal/models"
	"blog-backend/internal/query"
	"blog-backend/internal/repositories"
)

type userRepository struct{ s *Store }

func (r *userRepository) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepository) List(_ context.Context) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	users := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (r *userRepository) UpdateProfile(_ context.Context, id string, name, bio, profilePic *string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if bio != nil {
		u.Bio = *bio
	}
	if profilePic != nil {
		u.ProfilePic = *profilePic
	}
	r.s.users[id] = u
	return &u, nil
}

func (r *userRepository) Search(_ context.Context, q query.UserQuery) ([]models.UserSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.searchUsers(q), nil
}

type postRepository struct{ s *Store }

func (r *postRepository) Create(_ context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[post.AuthorID]; !ok {
		return repositories.ErrNotFound
	}
	r.s.posts[post.ID] = *post
	return nil
}

func (r *postRepository) FindByID(_ context.Context, id string) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r *postRepository) Update(_ context.Context, id, authorID string, changes repositories.PostChanges) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok || p.AuthorID != authorID {
		return nil, repositories.ErrNotFound
	}
	if changes.Title != nil {
		p.Title = *changes.Title
	}
	if changes.Slug != nil {
		p.Slug = *changes.Slug
	}
	if changes.Content != nil {
		p.Content = *changes.Content
	}
	if changes.ImageURL != nil {
		p.ImageURL = *changes.ImageURL
	}
	r.s.posts[id] = p
	return &p, nil
}

func (r *postRepository) Delete(_ context.Context, id, authorID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok || p.AuthorID != authorID {
		return repositories.ErrNotFound
	}
	delete(r.s.posts, id)
	// Cascade like the foreign keys do
	for k, u := range r.s.upvotes {
		if u.PostID == id {
			delete(r.s.upvotes, k)
		}
	}
	for k, b := range r.s.bookmarks {
		if b.PostID == id {
			delete(r.s.bookmarks, k)
		}
	}
	for k, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, k)
		}
	}
	return nil
}

func (r *postRepository) Find(_ context.Context, q query.PostQuery) ([]models.PostSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.findPosts(q), nil
}

func (r *postRepository) Detail(_ context.Context, id string) (*models.PostDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	author := r.s.users[p.AuthorID]

	d := &models.PostDetail{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Content:       p.Content,
		ImageURL:      p.ImageURL,
		PublishedDate: p.PublishedAt,
		Published:     p.Published,
		Author: models.Author{
			ID:         author.ID,
			Name:       author.Name,
			Email:      author.Email,
			Details:    author.Bio,
			ProfilePic: author.ProfilePic,
		},
		Upvotes:   []models.EngagementRef{},
		Bookmarks: []models.EngagementRef{},
		Comments:  []models.EngagementRef{},
	}
	var upvotes, bookmarks, comments []timedRef
	for _, u := range r.s.upvotes {
		if u.PostID == id {
			upvotes = append(upvotes, timedRef{models.EngagementRef{ID: u.ID, UserID: u.UserID}, u.CreatedAt})
		}
	}
	for _, b := range r.s.bookmarks {
		if b.PostID == id {
			bookmarks = append(bookmarks, timedRef{models.EngagementRef{ID: b.ID, UserID: b.UserID}, b.CreatedAt})
		}
	}
	for _, c := range r.s.comments {
		if c.PostID == id {
			comments = append(comments, timedRef{models.EngagementRef{ID: c.ID, UserID: c.UserID}, c.CreatedAt})
		}
	}
	d.Upvotes = sortedRefs(upvotes)
	d.Bookmarks = sortedRefs(bookmarks)
	d.Comments = sortedRefs(comments)
	d.UpvoteCount = len(d.Upvotes)
	return d, nil
}

type timedRef struct {
	ref models.EngagementRef
	at  time.Time
}

// sortedRefs orders refs by creation time, then id.
func sortedRefs(refs []timedRef) []models.EngagementRef {
	sort.Slice(refs, func(i, j int) bool {
		if c := refs[i].at.Compare(refs[j].at); c != 0 {
			return c < 0
		}
		return refs[i].ref.ID < refs[j].ref.ID
	})
	out := make([]models.EngagementRef, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.ref)
	}
	return out
}

func (r *postRepository) Engagement(_ context.Context, postIDs []string) (map[string]models.Engagement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]models.Engagement, len(postIDs))
	for _, id := range postIDs {
		if _, ok := r.s.posts[id]; !ok {
			continue
		}
		e := models.Engagement{Upvotes: r.s.upvoteCount(id)}
		for _, b := range r.s.bookmarks {
			if b.PostID == id {
				e.Bookmarks++
			}
		}
		for _, c := range r.s.comments {
			if c.PostID == id {
				e.Comments++
			}
		}
		out[id] = e
	}
	return out, nil
}

type upvoteRepository struct{ s *Store }

func (r *upvoteRepository) Count(_ context.Context, userID, postID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, u := range r.s.upvotes {
		if u.UserID == userID && u.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (r *upvoteRepository) FindByUserAndPost(_ context.Context, userID, postID string) (*models.Upvote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.upvotes {
		if u.UserID == userID && u.PostID == postID {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *upvoteRepository) Create(_ context.Context, upvote *models.Upvote) (*models.Upvote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[upvote.PostID]; !ok {
		return nil, repositories.ErrNotFound
	}
	for _, u := range r.s.upvotes {
		if u.UserID == upvote.UserID && u.PostID == upvote.PostID {
			return &u, nil
		}
	}
	r.s.upvotes[upvote.ID] = *upvote
	created := *upvote
	return &created, nil
}

func (r *upvoteRepository) Delete(_ context.Context, id, userID, postID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.upvotes[id]
	if !ok || u.UserID != userID || (postID != "" && u.PostID != postID) {
		return repositories.ErrNotFound
	}
	delete(r.s.upvotes, id)
	return nil
}

type bookmarkRepository struct{ s *Store }

func (r *bookmarkRepository) FindByUserAndPost(_ context.Context, userID, postID string) (*models.Bookmark, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.bookmarks {
		if b.UserID == userID && b.PostID == postID {
			return &b, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *bookmarkRepository) Create(_ context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[bookmark.PostID]; !ok {
		return nil, repositories.ErrNotFound
	}
	for _, b := range r.s.bookmarks {
		if b.UserID == bookmark.UserID && b.PostID == bookmark.PostID {
			return &b, nil
		}
	}
	r.s.bookmarks[bookmark.ID] = *bookmark
	created := *bookmark
	return &created, nil
}

func (r *bookmarkRepository) ListPosts(_ context.Context, userID string) ([]models.PostSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var marks []models.Bookmark
	for _, b := range r.s.bookmarks {
		if b.UserID == userID {
			marks = append(marks, b)
		}
	}
	sort.Slice(marks, func(i, j int) bool {
		if !marks[i].CreatedAt.Equal(marks[j].CreatedAt) {
			return marks[i].CreatedAt.After(marks[j].CreatedAt)
		}
		return marks[i].ID < marks[j].ID
	})

	sel := query.PostQuery{Select: []query.PostField{
		query.PostID, query.PostTitle, query.PostContent, query.PostImageURL, query.PostPublishedDate, query.PostPublished,
		query.AuthorID, query.AuthorName, query.AuthorEmail, query.AuthorDetails, query.AuthorProfilePic,
	}}
	posts := make([]models.PostSummary, 0, len(marks))
	for _, b := range marks {
		p, ok := r.s.posts[b.PostID]
		if !ok {
			continue
		}
		posts = append(posts, project(sel, p, r.s.users[p.AuthorID], 0))
	}
	return posts, nil
}

func (r *bookmarkRepository) Delete(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookmarks[id]
	if !ok || b.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(r.s.bookmarks, id)
	return nil
}
