package config

import (
	"log/slog"

	"github.com/joho/godotenv"
)

// loadEnvFile loads the first of .env/.env.local that exists. Variables already
// present in the process environment are never overridden.
func loadEnvFile() {
	for _, path := range []string{".env", ".env.local"} {
		if err := godotenv.Load(path); err == nil {
			slog.Debug("Loaded environment variables", "path", path)
			return
		}
	}
}
