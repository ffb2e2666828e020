package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrProviderNotConfigured is returned by Validate when the selected
// abstractive backend has no API key.
var ErrProviderNotConfigured = errors.New("abstractive provider not configured")

type Config struct {
	Port string

	DatabaseURL string
	SslCertPath string

	AwsAccessKey string
	AwsSecretKey string
	AwsRegion    string
	BucketName   string

	AbstractiveProvider string
	GeminiAPIKey        string
	GenModel            string
	AnthropicAPIKey     string
	ClaudeModel         string
	OpenAIAPIKey        string
	OpenAIModel         string
	SummaryLanguage     string
	LLMRatePerSec       float64
	LLMSerial           bool
	LLMMaxInputTokens   int

	MaxInputChars    int
	MaxChunk         int
	ChunkConcurrency int
	IngestWorkers    int

	LogLevel   string
	JWTSecret  string
	TuningFile string
}

// LoadConfig loads .env (if present) and the process environment.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		SslCertPath:         getEnv("SSL_CERT_PATH", ""),
		AwsAccessKey:        getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey:        getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:           getEnv("AWS_REGION", "us-east-2"),
		BucketName:          getEnv("BUCKET_NAME", "sumora-docs"),
		AbstractiveProvider: strings.ToLower(getEnv("ABSTRACTIVE_PROVIDER", "gemini")),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		GenModel:            getEnv("GEN_MODEL", "gemini-1.5-flash"),
		AnthropicAPIKey:     getEnv("ANTHROPIC_API_KEY", ""),
		ClaudeModel:         getEnv("CLAUDE_MODEL", ""),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:         getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		SummaryLanguage:     getEnv("SUMMARY_LANGUAGE", "spanish"),
		LLMRatePerSec:       getEnvFloat("LLM_RATE_PER_SEC", 2),
		LLMSerial:           getEnvBool("LLM_SERIAL", false),
		LLMMaxInputTokens:   getEnvInt("LLM_MAX_INPUT_TOKENS", 4096),
		MaxInputChars:       getEnvInt("MAX_INPUT_CHARS", 100000),
		MaxChunk:            getEnvInt("MAX_CHUNK", 1000),
		ChunkConcurrency:    getEnvInt("CHUNK_CONCURRENCY", 1),
		IngestWorkers:       getEnvInt("INGEST_WORKERS", 2),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		TuningFile:          getEnv("TUNING_FILE", ""),
	}
}

// Validate checks that the selected abstractive backend is usable.
// The extractive mode never needs configuration.
func (c *Config) Validate() error {
	var key string
	switch c.AbstractiveProvider {
	case "gemini":
		key = c.GeminiAPIKey
	case "claude", "anthropic":
		key = c.AnthropicAPIKey
	case "openai":
		key = c.OpenAIAPIKey
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrProviderNotConfigured, c.AbstractiveProvider)
	}
	if key == "" {
		return fmt.Errorf("%w: %s api key missing", ErrProviderNotConfigured, c.AbstractiveProvider)
	}
	return nil
}

// PersistenceEnabled reports whether a database was configured.
func (c *Config) PersistenceEnabled() bool { return c.DatabaseURL != "" }

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("WARN: %s=%q not a number, using default %g", key, v, def)
		return def
	}
	return f
}

func getEnvBool(key string, def bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("WARN: %s=%q not a bool, using default %t", key, v, def)
		return def
	}
	return b
}
