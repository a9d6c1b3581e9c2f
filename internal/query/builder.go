package query

const (
	// SearchLimit caps post and user search results.
	SearchLimit = 5
	// MaxPageSize caps listing pages.
	MaxPageSize     = 100
	DefaultPageSize = 10
)

var authorProfile = []PostField{AuthorID, AuthorName, AuthorDetails, AuthorProfilePic, AuthorEmail}

// BuildAuthoredPostsQuery lists posts written by authorID, or every post when authorID is
// empty. Posts are ranked by upvotes, older first among equals, id last so that page
// boundaries are stable. page and pageSize are clamped to at least 1.
func BuildAuthoredPostsQuery(authorID string, page, pageSize int) PostQuery {
	page, pageSize = ClampPage(page, pageSize)

	sel := []PostField{PostContent, PostTitle, PostID, PostImageURL, PostPublishedDate, PostPublished, PostUpvoteCount}
	sel = append(sel, authorProfile...)

	return PostQuery{
		Select: sel,
		Filter: PostFilter{AuthorID: authorID},
		OrderBy: []PostOrder{
			{Key: SortUpvoteCount, Dir: Desc},
			{Key: SortPublishedAt, Dir: Asc},
			{Key: SortPostID, Dir: Asc},
		},
		Page: Page{Skip: (page - 1) * pageSize, Take: pageSize},
	}
}

// BuildPostSearchQuery matches keyword against title, content and author name.
// Results favour popular then recent posts and are capped at SearchLimit.
func BuildPostSearchQuery(keyword string) PostQuery {
	sel := []PostField{PostTitle, PostID, PostPublishedDate}
	sel = append(sel, authorProfile...)

	return PostQuery{
		Select: sel,
		Filter: PostFilter{
			Contains: &Contains{
				Keyword: keyword,
				Fields:  []TextField{MatchTitle, MatchContent, MatchAuthorName},
			},
		},
		OrderBy: []PostOrder{
			{Key: SortUpvoteCount, Dir: Desc},
			{Key: SortPublishedAt, Dir: Desc},
			{Key: SortPostID, Dir: Asc},
		},
		Page: Page{Skip: 0, Take: SearchLimit},
	}
}

// BuildUserSearchQuery matches keyword against user names, capped at SearchLimit.
func BuildUserSearchQuery(keyword string) UserQuery {
	return UserQuery{
		Select: []UserField{UserID, UserName, UserEmail},
		Filter: UserFilter{NameContains: keyword},
		OrderBy: []UserOrder{
			{Key: SortUserName, Dir: Asc},
			{Key: SortUserID, Dir: Asc},
		},
		Page: Page{Skip: 0, Take: SearchLimit},
	}
}

// ClampPage forces page >= 1 and 1 <= pageSize <= MaxPageSize.
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}
