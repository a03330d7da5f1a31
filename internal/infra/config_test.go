package infra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "FLOW_VARIANT", "SESSION_TTL", "VOCABULARY_FILE", "SUGGESTION_LIMIT",
		"CHAT_PROVIDER", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "full", cfg.FlowVariant)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 8, cfg.SuggestionLimit)
	assert.Equal(t, "none", cfg.Chat.Provider)
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("FLOW_VARIANT", "compact")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("SUGGESTION_LIMIT", "nope")
	t.Setenv("CHAT_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://tripzy.in, ,http://localhost:5173")

	cfg := LoadConfig()
	assert.Equal(t, "compact", cfg.FlowVariant)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 8, cfg.SuggestionLimit)
	assert.Equal(t, ChatConfig{Provider: "gemini", APIKey: "key", Model: "gemini-1.5-flash"}, cfg.Chat)
	assert.Equal(t, []string{"https://tripzy.in", "http://localhost:5173"}, cfg.CORSOrigins)
}
