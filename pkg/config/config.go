// Package config loads service configuration from the environment.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the serve command needs. Organization and PAT
// are only required when the Azure DevOps proxy endpoints are used; their
// absence is reported where the client is built, not here.
type Config struct {
	Port          string
	Environment   string
	Organization  string
	PAT           string
	AdminUsername string
	AdminPassword string
	StaticDir     string
}

// Load reads .env if present, then the process environment.
func Load() *Config {
	// Missing .env is fine; plain env vars still apply.
	_ = godotenv.Load()

	return &Config{
		Port:          getenv("PORT", "8080"),
		Environment:   getenv("ENVIRONMENT", "development"),
		Organization:  os.Getenv("AZURE_DEVOPS_ORG"),
		PAT:           os.Getenv("AZURE_DEVOPS_PAT"),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin"),
		StaticDir:     os.Getenv("STATIC_DIR"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
