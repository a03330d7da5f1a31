package infra

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	FlowVariant     string
	SessionTTL      time.Duration
	VocabularyFile  string
	SuggestionLimit int
	Chat            ChatConfig
	RateLimitRPS    float64
	RateLimitBurst  int
	CORSOrigins     []string
}

type ChatConfig struct {
	Provider string
	APIKey   string
	Model    string
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	return Config{
		Port:            getEnvWithDefault("PORT", "8080"),
		FlowVariant:     getEnvWithDefault("FLOW_VARIANT", "full"),
		SessionTTL:      getDurationWithDefault("SESSION_TTL", 30*time.Minute),
		VocabularyFile:  os.Getenv("VOCABULARY_FILE"),
		SuggestionLimit: getIntWithDefault("SUGGESTION_LIMIT", 8),
		Chat:            getChatConfig(),
		RateLimitRPS:    float64(getIntWithDefault("RATE_LIMIT_RPS", 20)),
		RateLimitBurst:  getIntWithDefault("RATE_LIMIT_BURST", 40),
		CORSOrigins:     splitList(os.Getenv("CORS_ALLOW_ORIGINS")),
	}
}

func getChatConfig() ChatConfig {
	provider := strings.ToLower(getEnvWithDefault("CHAT_PROVIDER", "none"))

	var apiKey, model string
	switch provider {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
	}

	return ChatConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Ignoring invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Ignoring invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
