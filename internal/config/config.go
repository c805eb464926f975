package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

// Config carries everything the application reads from the environment.
// It is loaded once in the container and handed to each component at
// construction; no package keeps mutable global configuration.
type Config struct {
	Port        string
	DatabaseDSN string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	CryptoKey string

	GeminiAPIKey string
	GeminiModel  string

	LiveKitAPIKey    string
	LiveKitAPISecret string
	LiveKitURL       string

	AllowedOrigins []string

	LogLevel string
}

var ErrMissingEnv = errors.New("required environment variable is not set")

func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseDSN:      os.Getenv("DATABASE_DSN"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
		CryptoKey:        os.Getenv("CRYPTO_KEY"),
		GeminiAPIKey:     os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LiveKitAPIKey:    os.Getenv("LIVEKIT_API_KEY"),
		LiveKitAPISecret: os.Getenv("LIVEKIT_API_SECRET"),
		LiveKitURL:       os.Getenv("LIVEKIT_URL"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	for name, value := range map[string]string{
		"DATABASE_DSN": cfg.DatabaseDSN,
		"JWT_SECRET":   cfg.JWTSecret,
	} {
		if value == "" {
			return Config{}, errors.Join(ErrMissingEnv, errors.New(name))
		}
	}

	return cfg, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
