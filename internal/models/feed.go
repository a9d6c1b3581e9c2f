package models

const (
	EventPostPublished = "post_published"
	EventPostUpdated   = "post_updated"
	EventPostDeleted   = "post_deleted"
)

// FeedEvent is pushed to live-feed websocket subscribers
type FeedEvent struct {
	Event     string `json:"event"`
	PostID    string `json:"postId"`
	Title     string `json:"title,omitempty"`
	AuthorID  string `json:"authorId,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
