// Package config gathers the environment-driven settings for the API binary.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every setting the binary reads from the environment.
type Config struct {
	Port string

	SpotifyClientID     string
	SpotifyClientSecret string
	GeniusAccessToken   string
	OpenAIAPIKey        string
	OpenAITimeout       time.Duration
	PlacesAPIKey        string

	WikiLanguage string

	// RedisAddr switches the enrichment cache from in-memory to Redis when
	// set.
	RedisAddr     string
	RedisPassword string

	StoragePath string
}

// Load reads the configuration and validates the required credentials.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		GeniusAccessToken:   os.Getenv("GENIUS_ACCESS_TOKEN"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAITimeout:       getEnvDuration("OPENAI_TIMEOUT_SECONDS", 60*time.Second),
		PlacesAPIKey:        os.Getenv("PLACES_API_KEY"),
		WikiLanguage:        getEnv("WIKI_LANGUAGE", "en"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		StoragePath:         getEnv("STORAGE_PATH", "pathos.db"),
	}

	if cfg.SpotifyClientID == "" || cfg.SpotifyClientSecret == "" {
		return nil, fmt.Errorf("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET are required")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}
