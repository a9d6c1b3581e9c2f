package handlers

import (
	"blog-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Services bundles what the routes depend on.
type Services struct {
	Tokens    *services.TokenService
	Users     *services.UserService
	Posts     *services.PostService
	Upvotes   *services.UpvoteService
	Bookmarks *services.BookmarkService
	Feed      *FeedHub
}

// Register mounts the API under /api/v1.
func Register(app *fiber.App, s Services) {
	api := app.Group("/api/v1")
	auth := AuthMiddleware(s.Tokens)

	user := api.Group("/user")
	user.Post("/signup", SignupHandler(s.Users))
	user.Post("/signin", SigninHandler(s.Users))
	user.Get("/me", auth, MeHandler(s.Users))
	user.Get("/profile/:id", auth, ProfileHandler(s.Users))
	user.Get("/", ListUsersHandler(s.Users))
	user.Post("/updateDetail", auth, UpdateDetailHandler(s.Users))

	// Literal paths go before /:id
	blog := api.Group("/blog")
	blog.Get("/bulk/:id?", ListPostsHandler(s.Posts))
	blog.Get("/search", SearchHandler(s.Posts))
	blog.Get("/bulkUser/:id", ListAuthorPostsHandler(s.Posts))
	blog.Get("/:id", auth, GetPostHandler(s.Posts))
	blog.Post("/", auth, CreatePostHandler(s.Posts))
	blog.Put("/", auth, UpdatePostHandler(s.Posts))
	blog.Delete("/:id", auth, DeletePostHandler(s.Posts))

	upvote := api.Group("/upvote", auth)
	upvote.Get("/:postId", CountUpvotesHandler(s.Upvotes))
	upvote.Post("/", AddUpvoteHandler(s.Upvotes))
	upvote.Delete("/", RemoveUpvoteHandler(s.Upvotes))

	bookmark := api.Group("/bookmark", auth)
	bookmark.Post("/", AddBookmarkHandler(s.Bookmarks))
	bookmark.Get("/", ListBookmarksHandler(s.Bookmarks))
	bookmark.Delete("/:id", RemoveBookmarkHandler(s.Bookmarks))

	api.Get("/feed/ws", WSUpgradeMiddleware, FeedIdentity(s.Tokens), FeedSocketHandler(s.Feed))
}
