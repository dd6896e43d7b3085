package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/gharfix/gharfix-ai-platform/internal/catalog"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Generation providers. Gemini is the primary; Bedrock is an optional
	// fallback, enabled when BedrockModelID is set.
	GeminiAPIKey   string
	GeminiModelID  string
	BedrockModelID string
	AWSRegion      string

	// Embeddings for retrieval.
	OpenAIAPIKey     string
	EmbeddingModelID string
	RetrievalTopK    int

	// Business contact surface for handoffs and apologies.
	ContactPhone   string
	WhatsAppNumber string

	// Booking keyword overrides, comma-separated. Empty means defaults.
	TriggerPhrases []string
	CancelPhrases  []string

	// Optional external state. Empty RedisAddr keeps all state in-process.
	RedisAddr     string
	RedisPassword string

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModelID:  getEnv("GEMINI_MODEL_ID", "gemini-1.5-flash"),
		BedrockModelID: getEnv("BEDROCK_MODEL_ID", ""),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),

		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		EmbeddingModelID: getEnv("EMBEDDING_MODEL_ID", "text-embedding-3-small"),
		RetrievalTopK:    getEnvAsInt("RETRIEVAL_TOP_K", 5),

		ContactPhone:   getEnv("CONTACT_PHONE", catalog.ContactPhone),
		WhatsAppNumber: getEnv("WHATSAPP_NUMBER", catalog.WhatsAppNumber),

		TriggerPhrases: getEnvAsList("BOOKING_TRIGGER_PHRASES"),
		CancelPhrases:  getEnvAsList("BOOKING_CANCEL_PHRASES"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		CORSAllowedOrigins: getEnvAsListDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, dropping empty
// entries. Returns nil when the variable is unset.
func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsListDefault(key string, defaultValue []string) []string {
	if v := getEnvAsList(key); v != nil {
		return v
	}
	return defaultValue
}
