package config

import (
	"os"
	"time"
)

// Auth policy selected per deployment. Exactly one guard protects the todo
// routes.
const (
	AuthModeBearer = "bearer"
	AuthModeAPIKey = "apikey"
)

// Config gom toàn bộ cấu hình từ biến môi trường; handler không đọc env
// trực tiếp.
type Config struct {
	Port          string
	AuthMode      string
	PrivateAPIKey string
	JWTSecret     []byte
	JWTExpiresIn  time.Duration
	PostgresURI   string
}

// Load reads the environment and applies defaults.
func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "3000"),
		AuthMode:      getEnv("AUTH_MODE", AuthModeBearer),
		PrivateAPIKey: os.Getenv("PRIVATE_API_KEY"),
		JWTSecret:     []byte(getEnv("JWT_SECRET", "your-secret-key-change-in-production")),
		JWTExpiresIn:  24 * time.Hour,
		PostgresURI:   os.Getenv("POSTGRESQL_URI"),
	}

	if raw := os.Getenv("JWT_EXPIRES_IN"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.JWTExpiresIn = d
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
