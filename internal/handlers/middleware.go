package handlers

import (
	"errors"
	"net/http"
	"strings"

	"blog-backend/internal/errs"
	"blog-backend/internal/services"
	"blog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AuthMiddleware verifies the bearer token and stores its subject in the "user_id" local.
func AuthMiddleware(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ""
		authHeader := c.Get(fiber.HeaderAuthorization)
		if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
			token = strings.TrimSpace(authHeader[7:])
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			return err
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

// currentUser returns the authenticated user id, or "" on public routes.
func currentUser(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// ErrorHandler renders every error as {"error", "code"} with the status of its kind.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message, "code": codeForStatus(fe.Code)})
	}

	var e *errs.Error
	if !errors.As(err, &e) {
		e = errs.Internal(err)
	}
	if e.Kind == errs.KindInternal {
		utils.LogError(e.Err, c.Method()+" "+c.Path())
	} else {
		logrus.WithFields(logrus.Fields{"path": c.Path(), "code": e.Kind}).Debug(e.Message)
	}

	body := fiber.Map{"error": e.Message, "code": e.Kind}
	if len(e.Fields) > 0 {
		body["fields"] = e.Fields
	}
	return c.Status(e.Kind.Status()).JSON(body)
}

func codeForStatus(status int) errs.Kind {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return errs.KindValidation
	case fiber.StatusUnauthorized:
		return errs.KindUnauthenticated
	case fiber.StatusForbidden:
		return errs.KindForbidden
	case fiber.StatusNotFound:
		return errs.KindNotFound
	case fiber.StatusConflict:
		return errs.KindConflict
	}
	if status >= 500 {
		return errs.KindInternal
	}
	return errs.Kind(strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_")))
}

// parseBody decodes the JSON body into v.
func parseBody(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return errs.Validation("invalid request body", nil)
	}
	return nil
}
