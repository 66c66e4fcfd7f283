package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AccessToken     string
	GraphAPIVersion string
	GraphBaseURL    string

	Port string
}

func Load() (*Config, error) {
	// .env is optional — env vars may already be set (e.g. in production)
	_ = godotenv.Load()

	cfg := &Config{
		AccessToken:     os.Getenv("WHATSAPP_ACCESS_TOKEN"),
		GraphAPIVersion: os.Getenv("GRAPH_API_VERSION"),
		GraphBaseURL:    os.Getenv("GRAPH_API_BASE_URL"),
		Port:            os.Getenv("PORT"),
	}

	if cfg.GraphAPIVersion == "" {
		cfg.GraphAPIVersion = "v21.0"
	}

	if cfg.GraphBaseURL == "" {
		cfg.GraphBaseURL = fmt.Sprintf("https://graph.facebook.com/%s", cfg.GraphAPIVersion)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("required env var WHATSAPP_ACCESS_TOKEN is not set")
	}

	return cfg, nil
}
