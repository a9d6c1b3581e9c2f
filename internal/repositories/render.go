package repositories

import (
	"fmt"
	"strings"
	"time"

	"blog-backend/internal/models"
	"blog-backend/internal/query"
)

const postFrom = `FROM posts p ` +
	`JOIN users u ON u.id = p.author_id ` +
	`LEFT JOIN LATERAL (SELECT COUNT(*) AS upvote_count FROM upvotes v WHERE v.post_id = p.id) uv ON TRUE`

var postColumns = map[query.PostField]string{
	query.PostID:            "p.id",
	query.PostTitle:         "p.title",
	query.PostContent:       "p.content",
	query.PostImageURL:      "p.image_url",
	query.PostPublishedDate: "p.published_at",
	query.PostPublished:     "p.published",
	query.PostUpvoteCount:   "uv.upvote_count",
	query.AuthorID:          "u.id",
	query.AuthorName:        "u.name",
	query.AuthorEmail:       "u.email",
	query.AuthorDetails:     "u.bio",
	query.AuthorProfilePic:  "u.profile_pic",
}

var postSortColumns = map[query.PostSortKey]string{
	query.SortUpvoteCount: "uv.upvote_count",
	query.SortPublishedAt: "p.published_at",
	query.SortPostID:      "p.id",
}

var textColumns = map[query.TextField]string{
	query.MatchTitle:      "p.title",
	query.MatchContent:    "p.content",
	query.MatchAuthorName: "u.name",
}

var userColumns = map[query.UserField]string{
	query.UserID:    "u.id",
	query.UserName:  "u.name",
	query.UserEmail: "u.email",
}

var userSortColumns = map[query.UserSortKey]string{
	query.SortUserName: "u.name",
	query.SortUserID:   "u.id",
}

// args numbers placeholders as values are appended
type args []any

func (a *args) add(v any) string {
	*a = append(*a, v)
	return fmt.Sprintf("$%d", len(*a))
}

// RenderPostQuery turns a post descriptor into a parameterized SELECT. Unknown fields or
// sort keys are an error so a descriptor can never inject SQL.
func RenderPostQuery(q query.PostQuery) (string, []any, error) {
	if len(q.Select) == 0 {
		return "", nil, fmt.Errorf("post query selects no fields")
	}

	cols := make([]string, 0, len(q.Select))
	for _, f := range q.Select {
		col, ok := postColumns[f]
		if !ok {
			return "", nil, fmt.Errorf("unknown post field %q", f)
		}
		cols = append(cols, col)
	}

	var a args
	var where []string
	if q.Filter.AuthorID != "" {
		where = append(where, "p.author_id = "+a.add(q.Filter.AuthorID))
	}
	if c := q.Filter.Contains; c != nil && len(c.Fields) > 0 {
		ph := a.add(likePattern(c.Keyword))
		ors := make([]string, 0, len(c.Fields))
		for _, f := range c.Fields {
			col, ok := textColumns[f]
			if !ok {
				return "", nil, fmt.Errorf("unknown text field %q", f)
			}
			ors = append(ors, col+" ILIKE "+ph)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	order := make([]string, 0, len(q.OrderBy))
	for _, o := range q.OrderBy {
		col, ok := postSortColumns[o.Key]
		if !ok {
			return "", nil, fmt.Errorf("unknown post sort key %q", o.Key)
		}
		order = append(order, col+" "+direction(o.Dir))
	}

	parts := []string{"SELECT " + strings.Join(cols, ", "), postFrom}
	if len(where) > 0 {
		parts = append(parts, "WHERE "+strings.Join(where, " AND "))
	}
	if len(order) > 0 {
		parts = append(parts, "ORDER BY "+strings.Join(order, ", "))
	}
	parts = append(parts, paging(&a, q.Page)...)

	return strings.Join(parts, " "), a, nil
}

// RenderUserQuery turns a user descriptor into a parameterized SELECT.
func RenderUserQuery(q query.UserQuery) (string, []any, error) {
	if len(q.Select) == 0 {
		return "", nil, fmt.Errorf("user query selects no fields")
	}

	cols := make([]string, 0, len(q.Select))
	for _, f := range q.Select {
		col, ok := userColumns[f]
		if !ok {
			return "", nil, fmt.Errorf("unknown user field %q", f)
		}
		cols = append(cols, col)
	}

	var a args
	parts := []string{"SELECT " + strings.Join(cols, ", "), "FROM users u"}
	if q.Filter.NameContains != "" {
		parts = append(parts, "WHERE u.name ILIKE "+a.add(likePattern(q.Filter.NameContains)))
	}

	order := make([]string, 0, len(q.OrderBy))
	for _, o := range q.OrderBy {
		col, ok := userSortColumns[o.Key]
		if !ok {
			return "", nil, fmt.Errorf("unknown user sort key %q", o.Key)
		}
		order = append(order, col+" "+direction(o.Dir))
	}
	if len(order) > 0 {
		parts = append(parts, "ORDER BY "+strings.Join(order, ", "))
	}
	parts = append(parts, paging(&a, q.Page)...)

	return strings.Join(parts, " "), a, nil
}

func paging(a *args, p query.Page) []string {
	var out []string
	if p.Skip > 0 {
		out = append(out, "OFFSET "+a.add(p.Skip))
	}
	if p.Take > 0 {
		out = append(out, "LIMIT "+a.add(p.Take))
	}
	return out
}

func direction(d query.Direction) string {
	if d == query.Desc {
		return "DESC"
	}
	return "ASC"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a substring pattern with LIKE metacharacters escaped
func likePattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}

// postScanDest returns scan destinations for the selected fields, in select order
func postScanDest(s *models.PostSummary, fields []query.PostField) []any {
	dest := make([]any, 0, len(fields))
	author := func() *models.Author {
		if s.Author == nil {
			s.Author = &models.Author{}
		}
		return s.Author
	}
	for _, f := range fields {
		switch f {
		case query.PostID:
			dest = append(dest, &s.ID)
		case query.PostTitle:
			dest = append(dest, &s.Title)
		case query.PostContent:
			dest = append(dest, &s.Content)
		case query.PostImageURL:
			dest = append(dest, &s.ImageURL)
		case query.PostPublishedDate:
			s.PublishedDate = new(time.Time)
			dest = append(dest, s.PublishedDate)
		case query.PostPublished:
			s.Published = new(bool)
			dest = append(dest, s.Published)
		case query.PostUpvoteCount:
			s.UpvoteCount = new(int)
			dest = append(dest, s.UpvoteCount)
		case query.AuthorID:
			dest = append(dest, &author().ID)
		case query.AuthorName:
			dest = append(dest, &author().Name)
		case query.AuthorEmail:
			dest = append(dest, &author().Email)
		case query.AuthorDetails:
			dest = append(dest, &author().Details)
		case query.AuthorProfilePic:
			dest = append(dest, &author().ProfilePic)
		}
	}
	return dest
}

func userScanDest(u *models.UserSummary, fields []query.UserField) []any {
	dest := make([]any, 0, len(fields))
	for _, f := range fields {
		switch f {
		case query.UserID:
			dest = append(dest, &u.ID)
		case query.UserName:
			dest = append(dest, &u.Name)
		case query.UserEmail:
			dest = append(dest, &u.Email)
		}
	}
	return dest
}
