package handlers

import (
	"blog-backend/internal/metrics"
	"blog-backend/internal/models"
	"blog-backend/internal/query"
	"blog-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

func pageParams(c *fiber.Ctx) (int, int) {
	return c.QueryInt("page", 1), c.QueryInt("pageSize", query.DefaultPageSize)
}

// ListPostsHandler pages through all posts, or one author's when :id is present
func ListPostsHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, pageSize := pageParams(c)
		res, err := postService.ListPosts(c.Context(), c.Params("id"), page, pageSize)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

func ListAuthorPostsHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, pageSize := pageParams(c)
		res, err := postService.ListAuthorPosts(c.Context(), c.Params("id"), page, pageSize)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

func SearchHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := postService.SearchContent(c.Context(), c.Query("keyword"))
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// GetPostHandler returns a post with its engagement and the viewer's bookmark id
func GetPostHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := postService.GetPost(c.Context(), c.Params("id"), currentUser(c))
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

func CreatePostHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreatePostRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		res, err := postService.CreatePost(c.Context(), currentUser(c), req)
		if err != nil {
			return err
		}
		metrics.PostsPublished.Inc()
		return c.JSON(res)
	}
}

func UpdatePostHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdatePostRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		res, err := postService.UpdatePost(c.Context(), currentUser(c), req)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

func DeletePostHandler(postService *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := postService.DeletePost(c.Context(), currentUser(c), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}
