package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	AllowedOrigins []string

	SerpAPIKey      string
	SerpAPIEndpoint string
	SearchLocation  string
	SearchTimeout   time.Duration

	OpenAIKey      string
	OpenAIBaseURL  string
	SummaryModel   string
	SummaryTimeout time.Duration
	SummaryTTL     time.Duration

	LogLevel string
	LogFile  string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: allowedOrigins(getEnv("FRONTEND_URL", "")),

		SerpAPIKey:      getEnv("SERPAPI_KEY", ""),
		SerpAPIEndpoint: getEnv("SERPAPI_ENDPOINT", ""),
		SearchLocation:  getEnv("SEARCH_LOCATION", ""),
		SearchTimeout:   getEnvMs("SEARCH_TIMEOUT_MS", 12000),

		OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
		SummaryModel:   getEnv("SUMMARY_MODEL", ""),
		SummaryTimeout: getEnvMs("SUMMARY_TIMEOUT_MS", 60000),
		SummaryTTL:     getEnvMs("SUMMARY_TTL_MS", 300000),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

func allowedOrigins(frontendURL string) []string {
	origins := []string{"http://localhost:3000"}
	if frontendURL != "" {
		origins = append(origins, frontendURL)
	}
	return origins
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvMs(key string, fallbackMs int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Duration(fallbackMs) * time.Millisecond
}
