package models

import "time"

type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"imageUrl"`
	AuthorID    string    `json:"authorId"`
	PublishedAt time.Time `json:"publishedDate"`
	Published   bool      `json:"published"`
}

type Author struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Details    string `json:"details,omitempty"`
	ProfilePic string `json:"profilePic,omitempty"`
}

// PostSummary is one row of a listing or search. Which fields are filled depends on
// the query's selection, so optional values are pointers or omitempty.
type PostSummary struct {
	ID            string     `json:"id"`
	Title         string     `json:"title,omitempty"`
	Content       string     `json:"content,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	PublishedDate *time.Time `json:"publishedDate,omitempty"`
	Published     *bool      `json:"published,omitempty"`
	Author        *Author    `json:"author,omitempty"`
	UpvoteCount   *int       `json:"upvoteCount,omitempty"`
}

type Engagement struct {
	Upvotes   int `json:"upvotes"`
	Bookmarks int `json:"bookmarks"`
	Comments  int `json:"comments"`
}

// AuthoredPost is a bulkUser row: the summary plus engagement totals
type AuthoredPost struct {
	PostSummary
	Engagement Engagement `json:"engagement"`
}

// EngagementRef identifies an upvote, bookmark or comment on a post
type EngagementRef struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
}

type PostDetail struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Content       string          `json:"content"`
	ImageURL      string          `json:"imageUrl"`
	PublishedDate time.Time       `json:"publishedDate"`
	Published     bool            `json:"published"`
	Author        Author          `json:"author"`
	Upvotes       []EngagementRef `json:"upvotes"`
	Bookmarks     []EngagementRef `json:"bookmarks"`
	Comments      []EngagementRef `json:"comments"`
	UpvoteCount   int             `json:"upvoteCount"`
	BookmarkID    *string         `json:"bookmarkId,omitempty"`
}

type PostPage struct {
	Posts    []PostSummary `json:"posts"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}

type AuthoredPostPage struct {
	Posts    []AuthoredPost `json:"posts"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

type SearchResult struct {
	Posts []PostSummary `json:"posts"`
	Users []UserSummary `json:"users"`
}

type CreatePostRequest struct {
	Title    string `json:"title" validate:"required,notblank,max=200"`
	Content  string `json:"content" validate:"required,notblank,max=100000"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url,max=2048"`
}

// UpdatePostRequest leaves nil fields untouched
type UpdatePostRequest struct {
	ID       string  `json:"id" validate:"required"`
	Title    *string `json:"title" validate:"omitnil,notblank,max=200"`
	Content  *string `json:"content" validate:"omitnil,notblank,max=100000"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,url,max=2048"`
}

type IDResponse struct {
	ID string `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
