package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGroq, config.Provider)
	assert.Equal(t, GroqBaseURL, config.BaseURL)
	assert.Equal(t, DefaultTimeout, config.Timeout)
	assert.Equal(t, "llama-3.1-8b-instant", config.GetModel(TierLite))
	assert.Equal(t, "llama-3.1-70b-versatile", config.GetModel(TierStandard))
	assert.Equal(t, "openai/gpt-oss-120b", config.GetModel(TierAdvanced))
}

func TestConfigFor(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		want     Provider
	}{
		{"groq", "groq", ProviderGroq},
		{"openrouter", "openrouter", ProviderOpenRouter},
		{"openai", "openai", ProviderOpenAI},
		{"gemini", "gemini", ProviderGemini},
		{"unknown falls back to groq", "mystery", ProviderGroq},
		{"empty falls back to groq", "", ProviderGroq},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFor(tt.provider).Provider)
		})
	}
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGroq,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGroq,
		Models:   map[ModelTier]string{},
	}

	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	config.Timeout = 5 * time.Second
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "openai/gpt-oss-120b", config.GetModel(TierAdvanced))

	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))
	assert.Equal(t, "llama-3.1-8b-instant", newConfig.GetModel(TierLite))
	assert.Equal(t, 5*time.Second, newConfig.Timeout)
	assert.Equal(t, GroqBaseURL, newConfig.BaseURL)
}

func TestWithModel_EmptyKeepsTier(t *testing.T) {
	config := DefaultConfig().WithModel(TierLite, "")
	assert.Equal(t, "llama-3.1-8b-instant", config.GetModel(TierLite))
}

func TestModelTierConstants(t *testing.T) {
	assert.Equal(t, ModelTier("lite"), TierLite)
	assert.Equal(t, ModelTier("standard"), TierStandard)
	assert.Equal(t, ModelTier("advanced"), TierAdvanced)
}
