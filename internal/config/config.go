// internal/config/config.go
package config

import (
	"os"
	"time"

	"gracehub-service/internal/pkg/jwt"
)

type AppConfig struct {
	// Server
	HTTPAddr  string
	RedisAddr string
	RedisPass string

	// Boundary endpoints consumed by clients of the core
	AuthBaseURL string
	RealtimeURL string

	// JWT
	JWT jwt.Config

	// Session refresh cadence. Shorter than the access token TTL so the
	// pair is always swapped before expiry.
	RefreshInterval time.Duration
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8000"),
		RedisAddr: getEnv("REDIS_ADDR", ""),
		RedisPass: getEnv("REDIS_PASS", ""),

		AuthBaseURL: getEnv("AUTH_BASE_URL", "http://localhost:8000/api/v1"),
		RealtimeURL: getEnv("REALTIME_URL", "ws://localhost:8000/ws"),

		JWT: jwt.Config{
			PrivPath:   getEnv("JWT_PRIVATE_KEY_PATH", ""),
			PubPath:    getEnv("JWT_PUBLIC_KEY_PATH", ""),
			Issuer:     "gracehub",
			Audience:   "gracehub-admins",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
			KID:        "gracehub-key",
		},

		RefreshInterval: 14 * time.Minute,
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
