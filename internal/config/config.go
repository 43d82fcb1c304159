package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds server configuration loaded from environment variables.
type Config struct {
	Port           string
	DBPath         string
	ExecURL        string
	ExecTimeoutSec int
	StaticDir      string
	MaxRunHistory  int
}

// Load reads configuration from the environment with sensible defaults. A
// .env file in the working directory is loaded first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           envOrDefault("PORT", "5000"),
		DBPath:         envOrDefault("DB_PATH", "codeconnect.db"),
		ExecURL:        envOrDefault("EXEC_URL", "https://emkc.org/api/v2/piston/execute"),
		ExecTimeoutSec: envOrDefaultInt("EXEC_TIMEOUT_SECONDS", 30),
		StaticDir:      envOrDefault("STATIC_DIR", "frontend/dist"),
		MaxRunHistory:  envOrDefaultInt("MAX_RUN_HISTORY", 20),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
