package config

import (
	"errors"
	"time"

	"blog-backend/internal/utils"
)

// ErrMissingJWTSecret is returned by Load when JWT_SECRET is unset.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
	LogLevel    string
	LogFormat   string
	CORSOrigins []string
	DBMaxConns  int
	DBMinConns  int
}

// Load reads configuration from the environment. Call utils.LoadEnv first to pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        utils.GetEnv("PORT", "3001"),
		DatabaseURL: databaseURL(),
		JWTSecret:   utils.GetEnv("JWT_SECRET", ""),
		JWTTTL:      utils.GetEnvDuration("JWT_TTL", 72*time.Hour),
		LogLevel:    utils.GetEnv("LOG_LEVEL", "info"),
		LogFormat:   utils.GetEnv("LOG_FORMAT", "json"),
		CORSOrigins: utils.GetEnvList("CORS_ORIGINS", []string{"*"}),
		DBMaxConns:  utils.GetEnvInt("DB_MAX_CONNS", 10),
		DBMinConns:  utils.GetEnvInt("DB_MIN_CONNS", 2),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

func databaseURL() string {
	if connString := utils.GetEnv("DATABASE_URL", ""); connString != "" {
		return connString
	}
	// Fallback to individual vars
	return "postgres://" + utils.GetEnv("POSTGRES_USER", "postgres") + ":" +
		utils.GetEnv("POSTGRES_PASSWORD", "postgres") + "@" +
		utils.GetEnv("POSTGRES_HOST", "localhost") + ":" +
		utils.GetEnv("POSTGRES_PORT", "5432") + "/" +
		utils.GetEnv("POSTGRES_DB", "blogdb") + "?sslmode=disable"
}
