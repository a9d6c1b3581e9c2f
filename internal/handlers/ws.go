package handlers

import (
	"time"

	"blog-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// WSUpgradeMiddleware rejects plain HTTP requests on websocket routes.
func WSUpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// FeedIdentity attaches the reader's user id when a valid access_token query
// parameter is present. Anonymous readers are allowed.
func FeedIdentity(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Query("access_token"); token != "" {
			if userID, err := tokens.Verify(token); err == nil {
				c.Locals("user_id", userID)
			}
		}
		return c.Next()
	}
}

// FeedSocketHandler streams post events until the client disconnects. Client
// messages are read only to detect the close.
func FeedSocketHandler(hub *FeedHub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals("user_id").(string)
		connID := uuid.New().String()

		hub.Subscribe(connID, userID, c)
		defer func() {
			hub.Unsubscribe(connID)
			c.Close()
		}()

		welcome := fiber.Map{
			"event":     "connected",
			"message":   "Subscribed to the live feed",
			"timestamp": time.Now().Unix(),
		}
		if userID != "" {
			welcome["userId"] = userID
			welcome["connections"] = hub.CountUserConnections(userID)
		}
		if err := hub.Send(connID, welcome); err != nil {
			return
		}

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					logrus.WithError(err).WithField("conn_id", connID).Warn("feed connection closed")
				}
				return
			}
		}
	})
}
