package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabasePath  string
	MigrationsDir string
	MapPool       []string
}

// Load reads configuration from the environment, with a .env file as a
// development convenience. Missing .env is fine in production.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		DatabasePath:  getenv("DATABASE_PATH", "tournaments.db"),
		MigrationsDir: getenv("MIGRATIONS_DIR", "migrations"),
	}

	if pool := os.Getenv("MAP_POOL"); pool != "" {
		for _, name := range strings.Split(pool, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.MapPool = append(cfg.MapPool, name)
			}
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
