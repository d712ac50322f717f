package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	JWTSecret string
	TokenTTL  time.Duration

	DataDir     string
	DatabaseURL string

	// TranscriptionProviders is the priority order of speech-to-text providers
	TranscriptionProviders []string

	HuggingFaceKey    string
	HuggingFaceSTTURL string
	GroqKey           string
	GroqBaseURL       string
	OpenAIKey         string
	GoogleProjectID   string
	GoogleKeyData     string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		Environment:       getEnv("NODE_ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		JWTSecret:         getEnv("JWT_SECRET", defaultJWTSecret),
		DataDir:           getEnv("DATA_DIR", "data"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		HuggingFaceKey:    getEnv("HUGGINGFACE_API_KEY", os.Getenv("HF_API_KEY")),
		HuggingFaceSTTURL: getEnv("HUGGINGFACE_STT_URL", "https://api-inference.huggingface.co/models/openai/whisper-large-v3"),
		GroqKey:           os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:       getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		GoogleProjectID:   os.Getenv("GOOGLE_STT_PROJECT_ID"),
		GoogleKeyData:     os.Getenv("GOOGLE_STT_KEY_FILE"),
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", ttl)
	}
	cfg.TokenTTL = ttl

	cfg.TranscriptionProviders = splitList(getEnv("TRANSCRIPTION_PROVIDERS", "huggingface,groq,openai"))

	return cfg, nil
}

// UsesDefaultSecret reports whether tokens are signed with the built-in development secret
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			res = append(res, part)
		}
	}
	return res
}
