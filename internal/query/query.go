// Package query builds declarative descriptions of post and user listings.
//
// The builders never touch a database. A descriptor names the fields to project, the
// filter predicate, the sort order and the page window; the repositories package renders
// it to SQL and the in-memory repository evaluates it directly.
package query

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// PostField is a selectable post attribute, named as it appears in responses.
type PostField string

const (
	PostID            PostField = "id"
	PostTitle         PostField = "title"
	PostContent       PostField = "content"
	PostImageURL      PostField = "imageUrl"
	PostPublishedDate PostField = "publishedDate"
	PostPublished     PostField = "published"
	PostUpvoteCount   PostField = "upvoteCount"
	AuthorID          PostField = "author.id"
	AuthorName        PostField = "author.name"
	AuthorEmail       PostField = "author.email"
	AuthorDetails     PostField = "author.details"
	AuthorProfilePic  PostField = "author.profilePic"
)

// PostSortKey is an attribute posts can be ordered by.
type PostSortKey string

const (
	SortUpvoteCount PostSortKey = "upvoteCount"
	SortPublishedAt PostSortKey = "publishedAt"
	SortPostID      PostSortKey = "id"
)

// TextField is a post attribute that keyword matching can look at.
type TextField string

const (
	MatchTitle      TextField = "title"
	MatchContent    TextField = "content"
	MatchAuthorName TextField = "author.name"
)

type PostOrder struct {
	Key PostSortKey
	Dir Direction
}

// Contains matches rows where any of Fields contains Keyword, ignoring case.
type Contains struct {
	Keyword string
	Fields  []TextField
}

// PostFilter predicates are ANDed; zero values do not filter.
type PostFilter struct {
	AuthorID string
	Contains *Contains
}

// Page is an offset window.
type Page struct {
	Skip int
	Take int
}

type PostQuery struct {
	Select  []PostField
	Filter  PostFilter
	OrderBy []PostOrder
	Page    Page
}

// Selects reports whether f is part of the projection.
func (q PostQuery) Selects(f PostField) bool {
	for _, s := range q.Select {
		if s == f {
			return true
		}
	}
	return false
}

type UserField string

const (
	UserID    UserField = "id"
	UserName  UserField = "name"
	UserEmail UserField = "email"
)

type UserSortKey string

const (
	SortUserName UserSortKey = "name"
	SortUserID   UserSortKey = "id"
)

type UserOrder struct {
	Key UserSortKey
	Dir Direction
}

// UserFilter matches users whose name contains NameContains, ignoring case.
type UserFilter struct {
	NameContains string
}

type UserQuery struct {
	Select  []UserField
	Filter  UserFilter
	OrderBy []UserOrder
	Page    Page
}

func (q UserQuery) Selects(f UserField) bool {
	for _, s := range q.Select {
		if s == f {
			return true
		}
	}
	return false
}
