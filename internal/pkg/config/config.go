package config

import (
	"os"
	"strconv"
	"time"
)

type APIConfig struct {
	// BaseURL points at the InvisiThreat REST backend. The backend is an
	// external service; this app never owns credential storage.
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	Secret     string
	CookieName string
	MaxAge     time.Duration
}

type AuthConfig struct {
	// RefreshWindow is how close to the access token's expiry we start
	// exchanging the refresh token for a new one.
	RefreshWindow time.Duration

	// Failed-login throttling, per client IP.
	LoginMaxAttempts   int
	LoginAttemptWindow time.Duration
}

type Config struct {
	ServerPort  string
	MetricsPort string
	API         APIConfig
	Session     SessionConfig
	Auth        AuthConfig
}

func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8091"),
		MetricsPort: getEnvOrDefault("METRICS_PORT", "9092"),
		API: APIConfig{
			BaseURL: getEnvOrDefault("API_BASE_URL", "http://localhost:8000"),
			Timeout: getDurationOrDefault("API_TIMEOUT", 15*time.Second),
		},
		Session: SessionConfig{
			Secret:     getEnvOrDefault("SESSION_SECRET", ""),
			CookieName: getEnvOrDefault("SESSION_COOKIE_NAME", "invisithreat_session"),
			MaxAge:     getDurationOrDefault("SESSION_MAX_AGE", 7*24*time.Hour),
		},
		Auth: AuthConfig{
			RefreshWindow:      getDurationOrDefault("TOKEN_REFRESH_WINDOW", 5*time.Minute),
			LoginMaxAttempts:   getIntOrDefault("LOGIN_MAX_ATTEMPTS", 10),
			LoginAttemptWindow: getDurationOrDefault("LOGIN_ATTEMPT_WINDOW", 5*time.Minute),
		},
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
