package handlers

import (
	"blog-backend/internal/metrics"
	"blog-backend/internal/models"
	"blog-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CountUpvotesHandler reports how many times the caller upvoted :postId
func CountUpvotesHandler(upvoteService *services.UpvoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := upvoteService.CountUpvotes(c.Context(), currentUser(c), c.Params("postId"))
		if err != nil {
			return err
		}
		return c.JSON(models.UpvoteCountResponse{Upvotes: n, Message: "Upvotes by user on post"})
	}
}

func AddUpvoteHandler(upvoteService *services.UpvoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpvoteRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		res, err := upvoteService.AddUpvote(c.Context(), currentUser(c), req.BlogID)
		if err != nil {
			return err
		}
		metrics.UpvotesAdded.Inc()
		return c.JSON(res)
	}
}

func RemoveUpvoteHandler(upvoteService *services.UpvoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RemoveUpvoteRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		res, err := upvoteService.RemoveUpvote(c.Context(), currentUser(c), req)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

func AddBookmarkHandler(bookmarkService *services.BookmarkService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.BookmarkRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		res, err := bookmarkService.AddBookmark(c.Context(), currentUser(c), req.BlogID)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

func ListBookmarksHandler(bookmarkService *services.BookmarkService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		posts, err := bookmarkService.ListBookmarks(c.Context(), currentUser(c))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"payload": posts, "message": "All posts bookmarked by user"})
	}
}

func RemoveBookmarkHandler(bookmarkService *services.BookmarkService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := bookmarkService.RemoveBookmark(c.Context(), currentUser(c), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}
