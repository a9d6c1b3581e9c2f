package models

import "time"

type Upvote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PostID    string    `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Bookmark struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PostID    string    `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment rows are only read as identifiers on post details
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PostID    string    `json:"postId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type UpvoteRequest struct {
	BlogID string `json:"blogId"`
}

type RemoveUpvoteRequest struct {
	UpvoteID string `json:"upvoteId"`
	PostID   string `json:"postId"`
}

type UpvoteCountResponse struct {
	Upvotes int    `json:"upvotes"`
	Message string `json:"message"`
}

type BookmarkRequest struct {
	BlogID string `json:"blogId"`
}
