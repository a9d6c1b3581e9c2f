package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"blog-backend/internal/errs"
	"blog-backend/internal/models"
	"blog-backend/internal/query"
	"blog-backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// FeedPublisher receives post lifecycle events for live subscribers.
type FeedPublisher interface {
	Publish(event models.FeedEvent)
}

type PostService struct {
	posts     repositories.PostRepository
	users     repositories.UserRepository
	bookmarks repositories.BookmarkRepository
	feed      FeedPublisher
	shuffle   Shuffler
	now       func() time.Time
}

func NewPostService(posts repositories.PostRepository, users repositories.UserRepository, bookmarks repositories.BookmarkRepository, feed FeedPublisher) *PostService {
	return &PostService{
		posts:     posts,
		users:     users,
		bookmarks: bookmarks,
		feed:      feed,
		shuffle:   RandomShuffle,
		now:       time.Now,
	}
}

// SetShuffler replaces the in-page shuffle applied by ListPosts.
func (s *PostService) SetShuffler(shuffle Shuffler) {
	s.shuffle = shuffle
}

func (s *PostService) CreatePost(ctx context.Context, authorID string, req models.CreatePostRequest) (*models.IDResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validate(&req); err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		AuthorID:    authorID,
		PublishedAt: s.now().UTC(),
		Published:   true,
	}
	post.Slug = slugFor(post.Title, post.ID)

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, storeError(err, "author not found")
	}

	s.publish(models.EventPostPublished, post.ID, post.Title, authorID)
	return &models.IDResponse{ID: post.ID}, nil
}

// UpdatePost applies the fields present in req to a post owned by requesterID.
func (s *PostService) UpdatePost(ctx context.Context, requesterID string, req models.UpdatePostRequest) (*models.IDResponse, error) {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, req.ID, requesterID); err != nil {
		return nil, err
	}

	changes := repositories.PostChanges{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if req.Title != nil {
		sl := slugFor(*req.Title, req.ID)
		changes.Slug = &sl
	}

	post, err := s.posts.Update(ctx, req.ID, requesterID, changes)
	if err != nil {
		return nil, storeError(err, "post not found")
	}

	s.publish(models.EventPostUpdated, post.ID, post.Title, requesterID)
	return &models.IDResponse{ID: post.ID}, nil
}

func (s *PostService) DeletePost(ctx context.Context, requesterID, postID string) (*models.MessageResponse, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, errs.Validation("post id is required", map[string]string{"id": "id is required"})
	}
	if err := s.authorize(ctx, postID, requesterID); err != nil {
		return nil, err
	}

	if err := s.posts.Delete(ctx, postID, requesterID); err != nil {
		return nil, storeError(err, "post not found")
	}

	s.publish(models.EventPostDeleted, postID, "", requesterID)
	return &models.MessageResponse{Message: "Post deleted successfully"}, nil
}

// authorize distinguishes a missing post from one owned by someone else.
func (s *PostService) authorize(ctx context.Context, postID, requesterID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return storeError(err, "post not found")
	}
	if post.AuthorID != requesterID {
		return errs.Forbidden("post belongs to another author")
	}
	return nil
}

// GetPost returns the post with its engagement. BookmarkID is set when viewerID has
// bookmarked it.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID string) (*models.PostDetail, error) {
	detail, err := s.posts.Detail(ctx, postID)
	if err != nil {
		return nil, storeError(err, "post not found")
	}

	if viewerID != "" {
		bm, err := s.bookmarks.FindByUserAndPost(ctx, viewerID, postID)
		switch {
		case err == nil:
			detail.BookmarkID = &bm.ID
		case !errors.Is(err, repositories.ErrNotFound):
			return nil, errs.Internal(err)
		}
	}
	return detail, nil
}

// ListPosts returns one page of posts, of authorID only when it is not empty. The
// page membership is stable; the order inside the page is shuffled.
func (s *PostService) ListPosts(ctx context.Context, authorID string, page, pageSize int) (*models.PostPage, error) {
	page, pageSize = query.ClampPage(page, pageSize)

	posts, err := s.posts.Find(ctx, query.BuildAuthoredPostsQuery(authorID, page, pageSize))
	if err != nil {
		return nil, errs.Internal(err)
	}
	s.shuffle(len(posts), func(i, j int) { posts[i], posts[j] = posts[j], posts[i] })

	return &models.PostPage{Posts: posts, Page: page, PageSize: pageSize}, nil
}

// ListAuthorPosts pages through authorID's posts in rank order with engagement counts.
func (s *PostService) ListAuthorPosts(ctx context.Context, authorID string, page, pageSize int) (*models.AuthoredPostPage, error) {
	if strings.TrimSpace(authorID) == "" {
		return nil, errs.Validation("author id is required", map[string]string{"id": "id is required"})
	}
	page, pageSize = query.ClampPage(page, pageSize)

	posts, err := s.posts.Find(ctx, query.BuildAuthoredPostsQuery(authorID, page, pageSize))
	if err != nil {
		return nil, errs.Internal(err)
	}

	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	engagement, err := s.posts.Engagement(ctx, ids)
	if err != nil {
		return nil, errs.Internal(err)
	}

	out := make([]models.AuthoredPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, models.AuthoredPost{PostSummary: p, Engagement: engagement[p.ID]})
	}
	return &models.AuthoredPostPage{Posts: out, Page: page, PageSize: pageSize}, nil
}

// SearchContent runs the post and user searches concurrently. Either failure fails
// the whole search.
func (s *PostService) SearchContent(ctx context.Context, keyword string) (*models.SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errs.Validation("keyword is required", map[string]string{"keyword": "keyword is required"})
	}

	var result models.SearchResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		posts, err := s.posts.Find(gctx, query.BuildPostSearchQuery(keyword))
		if err != nil {
			return err
		}
		result.Posts = posts
		return nil
	})
	g.Go(func() error {
		users, err := s.users.Search(gctx, query.BuildUserSearchQuery(keyword))
		if err != nil {
			return err
		}
		result.Users = users
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, errs.Internal(err)
	}
	return &result, nil
}

func (s *PostService) publish(event, postID, title, authorID string) {
	logrus.WithFields(logrus.Fields{"event": event, "post_id": postID}).Info("post event")
	if s.feed == nil {
		return
	}
	s.feed.Publish(models.FeedEvent{
		Event:     event,
		PostID:    postID,
		Title:     title,
		AuthorID:  authorID,
		Timestamp: s.now().Unix(),
	})
}

// slugFor derives a URL slug from title, falling back to the post id when the
// title has no sluggable characters.
func slugFor(title, id string) string {
	if sl := slug.Make(title); sl != "" {
		return sl
	}
	return id
}
