// Package llm provides centralized LLM configuration and client abstractions.
// Every provider is reached through the same Complete call so callers only choose a model tier.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short structured extraction: resume parsing, fit scoring, chat
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: code review
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long generation: assessment question batches
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGroq is Groq's OpenAI-compatible chat completions API
	ProviderGroq Provider = "groq"
	// ProviderOpenRouter is OpenRouter's OpenAI-compatible chat completions API
	ProviderOpenRouter Provider = "openrouter"
	// ProviderOpenAI is the OpenAI API through the official SDK
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Default endpoints for the OpenAI-compatible providers
const (
	GroqBaseURL       = "https://api.groq.com/openai/v1"
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
)

// DefaultTimeout bounds a single completion call
const DefaultTimeout = 60 * time.Second

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	BaseURL  string
	Timeout  time.Duration
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (Groq)
func DefaultConfig() *Config {
	return DefaultGroqConfig()
}

// DefaultGroqConfig returns the default Groq configuration
func DefaultGroqConfig() *Config {
	return &Config{
		Provider: ProviderGroq,
		BaseURL:  GroqBaseURL,
		Timeout:  DefaultTimeout,
		Models: map[ModelTier]string{
			TierLite:     "llama-3.1-8b-instant",
			TierStandard: "llama-3.1-70b-versatile",
			TierAdvanced: "openai/gpt-oss-120b",
		},
	}
}

// DefaultOpenRouterConfig returns the default OpenRouter configuration
func DefaultOpenRouterConfig() *Config {
	return &Config{
		Provider: ProviderOpenRouter,
		BaseURL:  OpenRouterBaseURL,
		Timeout:  DefaultTimeout,
		Models: map[ModelTier]string{
			TierLite:     "meta-llama/llama-3.1-8b-instruct",
			TierStandard: "meta-llama/llama-3.1-70b-instruct",
			TierAdvanced: "openai/gpt-oss-120b",
		},
	}
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Timeout:  DefaultTimeout,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o",
			TierAdvanced: "gpt-4.1",
		},
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Timeout:  DefaultTimeout,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// ConfigFor returns the default configuration for a provider name.
// Unknown names fall back to Groq.
func ConfigFor(provider string) *Config {
	switch Provider(provider) {
	case ProviderOpenRouter:
		return DefaultOpenRouterConfig()
	case ProviderOpenAI:
		return DefaultOpenAIConfig()
	case ProviderGemini:
		return DefaultGeminiConfig()
	default:
		return DefaultGroqConfig()
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier.
// An empty model leaves the tier unchanged.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		BaseURL:  c.BaseURL,
		Timeout:  c.Timeout,
		Models:   make(map[ModelTier]string, len(c.Models)+1),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	if model != "" {
		newConfig.Models[tier] = model
	}
	return newConfig
}
