package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	LogLevel           string
	DatabaseURL        string
	ImageProvider      string
	GeminiAPIKey       string
	GeminiModel        string
	GeminiBaseURL      string
	GenerationTimeout  time.Duration
	StoragePath        string
	MinioEndpoint      string
	MinioAccessKey     string
	MinioSecretKey     string
	MinioBucket        string
	MinioUseSSL        bool
	MinioPublicURL     string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
	SessionIdle        time.Duration
	CORSAllowedOrigins []string
}

var knownProviders = map[string]bool{"gemini": true, "gemini-sdk": true, "synthetic": true}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. Only malformed values are errors; a missing API key
// is reported by Warnings instead.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ImageProvider:      strings.ToLower(getEnv("IMAGE_PROVIDER", "gemini")),
		GeminiAPIKey:       strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-flash-image"),
		GeminiBaseURL:      getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GenerationTimeout:  time.Second * time.Duration(getEnvInt("GENERATION_TIMEOUT_SECONDS", 120)),
		StoragePath:        getEnv("STORAGE_PATH", "./exports"),
		MinioEndpoint:      os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:     os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:     os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:        os.Getenv("MINIO_BUCKET"),
		MinioUseSSL:        strings.EqualFold(strings.TrimSpace(os.Getenv("MINIO_USE_SSL")), "true"),
		MinioPublicURL:     os.Getenv("MINIO_PUBLIC_URL"),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 300)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		SessionIdle:        time.Minute * time.Duration(getEnvInt("SESSION_IDLE_MINUTES", 120)),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	if !knownProviders[cfg.ImageProvider] {
		return nil, fmt.Errorf("IMAGE_PROVIDER %q is not one of gemini, gemini-sdk, synthetic", cfg.ImageProvider)
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric: %w", err)
	}
	if cfg.GenerationTimeout <= 0 {
		return nil, fmt.Errorf("GENERATION_TIMEOUT_SECONDS must be positive")
	}

	return cfg, nil
}

// Warnings lists configuration problems that do not stop the service.
func (c *Config) Warnings() []string {
	var out []string
	if c.ImageProvider != "synthetic" && c.GeminiAPIKey == "" {
		out = append(out, "GEMINI_API_KEY is not set; every generation will fail until a key is configured")
	}
	if c.DatabaseURL == "" {
		out = append(out, "DATABASE_URL is not set; generation attempts will not be recorded")
	}
	return out
}

// ObjectStoreEnabled reports whether MinIO export is configured.
func (c *Config) ObjectStoreEnabled() bool {
	return c.MinioEndpoint != "" && c.MinioAccessKey != "" && c.MinioSecretKey != "" && c.MinioBucket != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
