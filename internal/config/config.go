package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv            string
	AppName           string
	APIPrefix         string
	AppPort           string
	SessionBackend    string
	SessionSecret     string
	SessionTTLHours   int
	DatabaseURL       string
	CORSAllowOrigins  []string
	GeminiAPIKey      string
	GeminiModel       string
	GeminiBaseURL     string
	AIMaxOutputTokens int
	AITimeoutSeconds  int
}

func Load() Config {
	_ = godotenv.Load(".env")

	return Config{
		AppEnv:          getEnv("APP_ENV", "local"),
		AppName:         getEnv("APP_NAME", "HealthAssist API"),
		APIPrefix:       getEnv("API_PREFIX", "/api/v1"),
		AppPort:         getEnv("APP_PORT", "8000"),
		SessionBackend:  getEnv("SESSION_BACKEND", "memory"),
		SessionSecret:   getEnv("SESSION_SECRET", ""),
		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 24*30),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		CORSAllowOrigins: getEnvCSV(
			"CORS_ALLOW_ORIGINS",
			[]string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"},
		),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		AIMaxOutputTokens: getEnvInt("AI_MAX_OUTPUT_TOKENS", 1024),
		AITimeoutSeconds:  getEnvInt("AI_TIMEOUT_SECONDS", 20),
	}
}

func (c Config) Validate() error {
	secret := strings.TrimSpace(c.SessionSecret)
	if secret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if secret == "change-me-in-production" {
		return errors.New("SESSION_SECRET must not use insecure default value")
	}
	if len(secret) < 16 {
		return errors.New("SESSION_SECRET is too short; use at least 16 characters")
	}
	backend := strings.TrimSpace(c.SessionBackend)
	if backend != "memory" && backend != "postgres" {
		return errors.New("SESSION_BACKEND must be memory or postgres")
	}
	if backend == "postgres" && strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required when SESSION_BACKEND=postgres")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvCSV(key string, fallback []string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, item := range parts {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}
