package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// ChatClient implements Client for OpenAI-compatible chat completion endpoints (Groq, OpenRouter)
type ChatClient struct {
	http   *resty.Client
	config *Config
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// NewChatClient creates a client for an OpenAI-compatible endpoint
func NewChatClient(config *Config, apiKey string) (*ChatClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = GroqBaseURL
		if config.Provider == ProviderOpenRouter {
			baseURL = OpenRouterBaseURL
		}
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &ChatClient{http: client, config: config}, nil
}

// Complete posts the request to /chat/completions and returns the first choice's content
func (c *ChatClient) Complete(ctx context.Context, req Request) (string, error) {
	model, err := resolveModel(c.config, req)
	if err != nil {
		return "", err
	}

	body := chatRequest{
		Model:       model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.System != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.System})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: req.Prompt})

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", classifyError(model, err)
	}
	if resp.IsError() {
		return "", classifyStatus(model, resp.StatusCode(), resp.String())
	}

	text := strings.TrimSpace(gjson.GetBytes(resp.Body(), "choices.0.message.content").String())
	if text == "" {
		return "", emptyResponse(model)
	}
	return text, nil
}

// GetModel returns the model name for a tier
func (c *ChatClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *ChatClient) Close() error {
	return nil
}
