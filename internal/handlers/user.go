package handlers

import (
	"blog-backend/internal/errs"
	"blog-backend/internal/metrics"
	"blog-backend/internal/models"
	"blog-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SignupHandler creates an account and returns a token for it
func SignupHandler(userService *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SignupRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		res, err := userService.Signup(c.Context(), req)
		if err != nil {
			return err
		}
		metrics.SignupSuccess.Inc()
		return c.JSON(res)
	}
}

func SigninHandler(userService *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SigninRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		res, err := userService.Signin(c.Context(), req)
		if err != nil {
			metrics.SigninFailure.WithLabelValues(string(errs.KindOf(err))).Inc()
			return err
		}
		metrics.SigninSuccess.Inc()
		return c.JSON(res)
	}
}

// MeHandler returns the authenticated user's profile
func MeHandler(userService *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := userService.GetSelf(c.Context(), currentUser(c))
		if err != nil {
			return err
		}
		return c.JSON(profile)
	}
}

func ProfileHandler(userService *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := userService.GetProfile(c.Context(), c.Params("id"), currentUser(c))
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

func ListUsersHandler(userService *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := userService.ListUsers(c.Context())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"payload": users, "message": "All users"})
	}
}

// UpdateDetailHandler updates name, bio and profile picture; omitted fields are kept
func UpdateDetailHandler(userService *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateProfileRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		profile, err := userService.UpdateProfile(c.Context(), currentUser(c), req)
		if err != nil {
			return err
		}
		return c.JSON(profile)
	}
}
