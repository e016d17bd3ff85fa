package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	LogLevel    string
	Environment string
	CORSOrigins string

	// Upstream credentials. An absent credential deterministically routes
	// that platform to the fallback generator, never to an error.
	YouTubeAPIKey      string
	TwitterBearerToken string
	TikTokAccessToken  string

	// Per-adapter call timeout.
	FetchTimeout time.Duration

	// API keys granting paid tiers. Comma-separated.
	ProAPIKeys      []string
	BusinessAPIKeys []string
}

func Load() *Config {
	// Best-effort: production supplies real env vars.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		YouTubeAPIKey:      getEnv("YOUTUBE_API_KEY", ""),
		TwitterBearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
		TikTokAccessToken:  getEnv("TIKTOK_ACCESS_TOKEN", ""),

		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 4*time.Second),

		ProAPIKeys:      getEnvList("PRO_API_KEYS"),
		BusinessAPIKeys: getEnvList("BUSINESS_API_KEYS"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
