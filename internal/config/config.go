package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

const AppName = "Noteboard Backend"

type Config struct {
	Port        string
	DatabaseURL string
	// Migrate runs AutoMigrate on startup
	Migrate    bool
	LogLevel   string
	DBLogLevel string
}

// FromEnv reads the configuration from the environment. Load .env with
// godotenv before calling it.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "3000"),
		DatabaseURL: os.Getenv("DB_URL"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DBLogLevel:  getEnv("DB_LOG_LEVEL", "warn"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DB_URL is required")
	}

	if raw := os.Getenv("DB_MIGRATE"); raw != "" {
		migrate, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DB_MIGRATE value %q: %w", raw, err)
		}
		cfg.Migrate = migrate
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
