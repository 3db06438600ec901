package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config is process-wide immutable configuration, loaded once at startup.
type Config struct {
	// OpenWeatherAPIKey is the provider credential. An empty value is not a
	// startup error: calls fail at the provider and surface as provider
	// rejections.
	OpenWeatherAPIKey string

	Port string
}

// Load reads configuration from a .env file (best effort) and the process
// environment.
func Load(log *slog.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file loaded", "err", err)
	}

	return &Config{
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		Port:              getenvDefault("PORT", "8080"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
