package commands

import (
	"context"
	"fmt"
	"time"

	"blog-backend/internal/app"
	"blog-backend/internal/config"
	"blog-backend/internal/db"
	"blog-backend/internal/utils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the blog command with its subcommands. Every subcommand
// loads the env file and configures logging first.
func NewRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "blog",
		Short:         "Blogging platform backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.LoadEnv(envFile); err != nil {
				logrus.WithField("file", envFile).Debug("env file not loaded")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&envFile, "env", "e", ".env", "env file to load")
	root.AddCommand(
		NewServeCommand(),
		NewMigrateCommand(),
	)
	return root
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return app.Run(cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

// NewMigrateCommand creates the migrate command
func NewMigrateCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			pool, err := db.Connect(ctx, cfg.DatabaseURL, db.PoolOptions{MaxConns: 1, MinConns: 1})
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.Migrate(ctx, pool); err != nil {
				return err
			}
			logrus.Info("schema is up to date")
			return nil
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "migration timeout")
	return cmd
}
