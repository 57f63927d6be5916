// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Server holds all configuration values for the itinerary API server.
// Values are populated by LoadServer from environment variables.
type Server struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "3001".
	Port string

	// DataFile is the path of the JSON file the itinerary document is
	// persisted to. Defaults to "data/itinerary.json".
	DataFile string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes limits the size of incoming request bodies.
	// Defaults to 1 MiB; itinerary documents are far smaller.
	MaxBodyBytes int64
}

// Client holds configuration for the voyage CLI.
type Client struct {
	// RemoteURL is the itinerary endpoint of a running API server.
	// Empty means offline mode: the CLI works against the local cache only.
	RemoteURL string

	// CachePath is the SQLite cache file. Empty means the per-user default.
	CachePath string
}

// LoadServer reads server configuration from the environment, falling back to
// a .env file in the working directory if present.
func LoadServer() (Server, error) {
	_ = godotenv.Load()

	cfg := Server{
		Port:        getEnv("PORT", "3001"),
		DataFile:    getEnv("DATA_FILE", "data/itinerary.json"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	maxBody := getEnv("MAX_BODY_BYTES", "1048576")
	n, err := strconv.ParseInt(maxBody, 10, 64)
	if err != nil || n <= 0 {
		return Server{}, fmt.Errorf("invalid MAX_BODY_BYTES %q: must be a positive integer", maxBody)
	}
	cfg.MaxBodyBytes = n

	return cfg, nil
}

// LoadClient reads CLI configuration from the environment, falling back to
// a .env file in the working directory if present.
func LoadClient() Client {
	_ = godotenv.Load()

	return Client{
		RemoteURL: os.Getenv("VOYAGE_REMOTE_URL"),
		CachePath: os.Getenv("VOYAGE_CACHE_PATH"),
	}
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
