// Package memory keeps repositories in process memory. It evaluates query descriptors
// the same way the PostgreSQL renderer does and backs service and handler tests.
package memory

import (
	"sort"
	"strings"
	"sync"

	"blog-backend/internal/models"
	"blog-backend/internal/query"
	"blog-backend/internal/repositories"
)

type Store struct {
	mu        sync.RWMutex
	users     map[string]models.User
	posts     map[string]models.Post
	upvotes   map[string]models.Upvote
	bookmarks map[string]models.Bookmark
	comments  map[string]models.Comment
}

func NewStore() *Store {
	return &Store{
		users:     make(map[string]models.User),
		posts:     make(map[string]models.Post),
		upvotes:   make(map[string]models.Upvote),
		bookmarks: make(map[string]models.Bookmark),
		comments:  make(map[string]models.Comment),
	}
}

func (s *Store) Users() repositories.UserRepository         { return &userRepository{s} }
func (s *Store) Posts() repositories.PostRepository         { return &postRepository{s} }
func (s *Store) Upvotes() repositories.UpvoteRepository     { return &upvoteRepository{s} }
func (s *Store) Bookmarks() repositories.BookmarkRepository { return &bookmarkRepository{s} }

// AddComment seeds a comment; there is no comment repository
func (s *Store) AddComment(c models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[c.ID] = c
}

func (s *Store) upvoteCount(postID string) int {
	n := 0
	for _, u := range s.upvotes {
		if u.PostID == postID {
			n++
		}
	}
	return n
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// window applies a Skip/Take page to n rows and returns the slice bounds
func window(n int, p query.Page) (int, int) {
	lo := p.Skip
	if lo > n {
		lo = n
	}
	hi := n
	if p.Take > 0 && lo+p.Take < n {
		hi = lo + p.Take
	}
	return lo, hi
}

func (s *Store) findPosts(q query.PostQuery) []models.PostSummary {
	type row struct {
		post    models.Post
		author  models.User
		upvotes int
	}

	var rows []row
	for _, p := range s.posts {
		author := s.users[p.AuthorID]
		if q.Filter.AuthorID != "" && p.AuthorID != q.Filter.AuthorID {
			continue
		}
		if c := q.Filter.Contains; c != nil && len(c.Fields) > 0 {
			matched := false
			for _, f := range c.Fields {
				var text string
				switch f {
				case query.MatchTitle:
					text = p.Title
				case query.MatchContent:
					text = p.Content
				case query.MatchAuthorName:
					text = author.Name
				}
				if containsFold(text, c.Keyword) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		rows = append(rows, row{post: p, author: author, upvotes: s.upvoteCount(p.ID)})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		for _, o := range q.OrderBy {
			var cmp int
			switch o.Key {
			case query.SortUpvoteCount:
				cmp = compareInt(a.upvotes, b.upvotes)
			case query.SortPublishedAt:
				cmp = a.post.PublishedAt.Compare(b.post.PublishedAt)
			case query.SortPostID:
				cmp = strings.Compare(a.post.ID, b.post.ID)
			}
			if o.Dir == query.Desc {
				cmp = -cmp
			}
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})

	lo, hi := window(len(rows), q.Page)
	out := make([]models.PostSummary, 0, hi-lo)
	for _, r := range rows[lo:hi] {
		out = append(out, project(q, r.post, r.author, r.upvotes))
	}
	return out
}

func project(q query.PostQuery, p models.Post, author models.User, upvotes int) models.PostSummary {
	var s models.PostSummary
	setAuthor := func(fn func(a *models.Author)) {
		if s.Author == nil {
			s.Author = &models.Author{}
		}
		fn(s.Author)
	}
	for _, f := range q.Select {
		switch f {
		case query.PostID:
			s.ID = p.ID
		case query.PostTitle:
			s.Title = p.Title
		case query.PostContent:
			s.Content = p.Content
		case query.PostImageURL:
			s.ImageURL = p.ImageURL
		case query.PostPublishedDate:
			t := p.PublishedAt
			s.PublishedDate = &t
		case query.PostPublished:
			b := p.Published
			s.Published = &b
		case query.PostUpvoteCount:
			n := upvotes
			s.UpvoteCount = &n
		case query.AuthorID:
			setAuthor(func(a *models.Author) { a.ID = author.ID })
		case query.AuthorName:
			setAuthor(func(a *models.Author) { a.Name = author.Name })
		case query.AuthorEmail:
			setAuthor(func(a *models.Author) { a.Email = author.Email })
		case query.AuthorDetails:
			setAuthor(func(a *models.Author) { a.Details = author.Bio })
		case query.AuthorProfilePic:
			setAuthor(func(a *models.Author) { a.ProfilePic = author.ProfilePic })
		}
	}
	return s
}

func (s *Store) searchUsers(q query.UserQuery) []models.UserSummary {
	var users []models.User
	for _, u := range s.users {
		if q.Filter.NameContains != "" && !containsFold(u.Name, q.Filter.NameContains) {
			continue
		}
		users = append(users, u)
	}

	sort.SliceStable(users, func(i, j int) bool {
		for _, o := range q.OrderBy {
			var cmp int
			switch o.Key {
			case query.SortUserName:
				cmp = strings.Compare(users[i].Name, users[j].Name)
			case query.SortUserID:
				cmp = strings.Compare(users[i].ID, users[j].ID)
			}
			if o.Dir == query.Desc {
				cmp = -cmp
			}
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})

	lo, hi := window(len(users), q.Page)
	out := make([]models.UserSummary, 0, hi-lo)
	for _, u := range users[lo:hi] {
		var sum models.UserSummary
		for _, f := range q.Select {
			switch f {
			case query.UserID:
				sum.ID = u.ID
			case query.UserName:
				sum.Name = u.Name
			case query.UserEmail:
				sum.Email = u.Email
			}
		}
		out = append(out, sum)
	}
	return out
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
