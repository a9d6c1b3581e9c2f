package app

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"blog-backend/internal/config"
	"blog-backend/internal/db"
	"blog-backend/internal/handlers"
	"blog-backend/internal/metrics"
	"blog-backend/internal/repositories"
	"blog-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// New builds the Fiber app with middleware, health, metrics and the API routes.
func New(cfg *config.Config, s handlers.Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "blog-backend",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(metrics.Instrument())
	app.Use("/api", cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", metrics.Handler())

	handlers.Register(app, s)
	return app
}

// Run connects to the database, serves HTTP and shuts down on SIGINT or SIGTERM.
func Run(cfg *config.Config) error {
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DatabaseURL, db.PoolOptions{
		MaxConns: int32(cfg.DBMaxConns),
		MinConns: int32(cfg.DBMinConns),
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return err
	}

	// Repositories
	users := repositories.NewUserRepository(pool)
	posts := repositories.NewPostRepository(pool)
	upvotes := repositories.NewUpvoteRepository(pool)
	bookmarks := repositories.NewBookmarkRepository(pool)

	// Services
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	feed := handlers.NewFeedHub()

	app := New(cfg, handlers.Services{
		Tokens:    tokens,
		Users:     services.NewUserService(users, tokens),
		Posts:     services.NewPostService(posts, users, bookmarks, feed),
		Upvotes:   services.NewUpvoteService(upvotes),
		Bookmarks: services.NewBookmarkService(bookmarks),
		Feed:      feed,
	})

	// Start Server
	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("port", cfg.Port).Info("HTTP server listening")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logrus.Info("Gracefully shutting down...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		return err
	}
	logrus.Info("Server shutdown complete")
	return nil
}
