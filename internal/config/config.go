package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Moderation ModerationConfig
	Storage    StorageConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	SupabaseURL string
	SupabaseKey string
	JWTSecret   string
}

// ModerationConfig controls the comment classifier. An empty APIKey means
// the AI fallback is skipped and moderation runs heuristic-only.
type ModerationConfig struct {
	APIKey       string
	BaseURL      string
	Provider     string
	Model        string
	Temperature  float64
	Timeout      time.Duration
	AnthropicKey string
	OllamaURL    string
	BadWordsPath string
	CacheTTL     time.Duration
}

type StorageConfig struct {
	SupabaseURL string
	SupabaseKey string
	Bucket      string
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	aiTimeout, err := getEnvDuration("MODERATION_AI_TIMEOUT", 8*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid MODERATION_AI_TIMEOUT: %w", err)
	}

	cacheTTL, err := getEnvDuration("MODERATION_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid MODERATION_CACHE_TTL: %w", err)
	}

	temperature, err := getEnvFloat("MODERATION_AI_TEMPERATURE", 0.3)
	if err != nil {
		return nil, fmt.Errorf("invalid MODERATION_AI_TEMPERATURE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			SupabaseURL: getEnv("SUPABASE_URL", ""),
			SupabaseKey: getEnv("SUPABASE_ANON_KEY", ""),
			JWTSecret:   getEnv("SUPABASE_JWT_SECRET", ""),
		},
		Moderation: ModerationConfig{
			APIKey:       getEnv("MODERATION_API_KEY", ""),
			BaseURL:      getEnv("MODERATION_AI_BASE_URL", "https://ai.gateway.lovable.dev/v1"),
			Provider:     getEnv("MODERATION_AI_PROVIDER", "gateway"),
			Model:        getEnv("MODERATION_AI_MODEL", "google/gemini-2.5-flash"),
			Temperature:  temperature,
			Timeout:      aiTimeout,
			AnthropicKey: getEnv("ANTHROPIC_API_KEY", ""),
			OllamaURL:    getEnv("OLLAMA_URL", ""),
			BadWordsPath: getEnv("MODERATION_BADWORDS_PATH", ""),
			CacheTTL:     cacheTTL,
		},
		Storage: StorageConfig{
			SupabaseURL: getEnv("SUPABASE_URL", ""),
			SupabaseKey: getEnv("SUPABASE_SERVICE_KEY", ""),
			Bucket:      getEnv("STORAGE_BUCKET", "avatars"),
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "SUPABASE_JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}
