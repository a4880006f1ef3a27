package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Request is a single completion call
type Request struct {
	System      string  // optional system instruction
	Prompt      string  // user message
	Model       string  // provider model id; empty means the client's standard tier
	Temperature float64 // sampling temperature
	MaxTokens   int     // output token budget; 0 leaves the provider default
}

// Client is an abstraction over LLM providers
type Client interface {
	// Complete sends the request and returns the trimmed completion text.
	// Failures are *InferenceError values.
	Complete(ctx context.Context, req Request) (string, error)
	// GetModel returns the provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(config, apiKey)
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderGroq, ProviderOpenRouter:
		return NewChatClient(config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// resolveModel picks the request's model or the configured standard tier.
func resolveModel(config *Config, req Request) (string, error) {
	if req.Model != "" {
		return req.Model, nil
	}
	if model := config.GetModel(TierStandard); model != "" {
		return model, nil
	}
	return "", &InferenceError{
		Kind:    KindTransport,
		Message: fmt.Sprintf("no model configured for provider %s", config.Provider),
	}
}

// classifyError maps a transport-level failure onto an InferenceError.
func classifyError(model string, err error) *InferenceError {
	var ie *InferenceError
	if errors.As(err, &ie) {
		return ie
	}

	kind := KindTransport
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	case strings.Contains(err.Error(), "RESOURCE_EXHAUSTED"):
		kind = KindRateLimited
	}
	return &InferenceError{Kind: kind, Model: model, Message: "completion request failed", Cause: err}
}

// classifyStatus maps a non-2xx HTTP status onto an InferenceError.
func classifyStatus(model string, status int, body string) *InferenceError {
	kind := KindTransport
	switch status {
	case http.StatusTooManyRequests:
		kind = KindRateLimited
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		kind = KindTimeout
	}
	return &InferenceError{
		Kind:    kind,
		Model:   model,
		Message: fmt.Sprintf("provider returned status %d: %s", status, truncateRunes(strings.TrimSpace(body), maxErrorBodyRunes)),
	}
}

const maxErrorBodyRunes = 300

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
