// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/career-prep/internal/llm"
	"github.com/jonathan/career-prep/internal/types"
	"github.com/kelseyhightower/envconfig"
)

// Environments recognised by APP_ENV
const (
	EnvProduction  = "production"
	EnvDevelopment = "dev"
)

// AppConfig is the process configuration read from the environment
type AppConfig struct {
	Env         string `envconfig:"APP_ENV" default:"production"`
	Port        int    `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	CORSOrigin  string `envconfig:"CORS_ORIGIN" default:"*"`
	MaxUploadMB int    `envconfig:"MAX_UPLOAD_MB" default:"10"`

	LLM LLMConfig `envconfig:"LLM"`
}

// LLMConfig selects the inference provider and per-tier model overrides.
// Keys are prefixed with LLM_, e.g. LLM_PROVIDER.
type LLMConfig struct {
	Provider       string        `envconfig:"PROVIDER" default:"groq"`
	APIKey         string        `envconfig:"API_KEY"`
	BaseURL        string        `envconfig:"BASE_URL"`
	Timeout        time.Duration `envconfig:"TIMEOUT" default:"60s"`
	LiteModel      string        `envconfig:"MODEL_LITE"`
	StandardModel  string        `envconfig:"MODEL_STANDARD"`
	AdvancedModel  string        `envconfig:"MODEL_ADVANCED"`
	FitConcurrency int           `envconfig:"FIT_CONCURRENCY" default:"4"`
}

// providerKeyEnv names the provider-specific key consulted when LLM_API_KEY is unset
var providerKeyEnv = map[llm.Provider]string{
	llm.ProviderGroq:       "GROQ_API_KEY",
	llm.ProviderOpenRouter: "OPENROUTER_API_KEY",
	llm.ProviderOpenAI:     "OPENAI_API_KEY",
	llm.ProviderGemini:     "GEMINI_API_KEY",
}

// Load reads the AppConfig from the environment and validates it.
func Load() (*AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if cfg.LLM.APIKey == "" {
		if name, ok := providerKeyEnv[llm.Provider(cfg.LLM.Provider)]; ok {
			cfg.LLM.APIKey = os.Getenv(name)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// DATABASE_URL and the API key are checked by the commands that need them.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxUploadMB < 1 || c.MaxUploadMB > 100 {
		return fmt.Errorf("config error: MAX_UPLOAD_MB must be between 1 and 100, got %d", c.MaxUploadMB)
	}
	if _, ok := providerKeyEnv[llm.Provider(c.LLM.Provider)]; !ok {
		return fmt.Errorf("config error: unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("config error: LLM_TIMEOUT must be positive, got %s", c.LLM.Timeout)
	}
	if c.LLM.FitConcurrency < 1 {
		return fmt.Errorf("config error: LLM_FIT_CONCURRENCY must be at least 1, got %d", c.LLM.FitConcurrency)
	}
	return nil
}

// IsDevelopment reports whether APP_ENV selects development mode
func (c *AppConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Env, EnvDevelopment)
}

// Addr returns the listen address for the HTTP server
func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ClientConfig builds the llm client configuration with any overrides applied.
func (c LLMConfig) ClientConfig() *llm.Config {
	cfg := llm.ConfigFor(c.Provider).
		WithModel(llm.TierLite, c.LiteModel).
		WithModel(llm.TierStandard, c.StandardModel).
		WithModel(llm.TierAdvanced, c.AdvancedModel)
	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	if c.Timeout > 0 {
		cfg.Timeout = c.Timeout
	}
	return cfg
}

// CLIConfig holds defaults for CLI runs that can be loaded from a JSON file.
// All fields are optional; flags take precedence.
type CLIConfig struct {
	Provider      string                   `json:"provider,omitempty"`
	APIKey        string                   `json:"api_key,omitempty"`
	DatabaseURL   string                   `json:"database_url,omitempty"`
	JobConfigs    []types.JobConfiguration `json:"job_configs,omitempty"`
	Role          string                   `json:"role,omitempty"`
	QuestionCount int                      `json:"question_count,omitempty"`
	Verbose       bool                     `json:"verbose,omitempty"`
}

// LoadConfig loads CLI defaults from a JSON file.
func LoadConfig(path string) (*CLIConfig, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg CLIConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges in the file.
func (c *CLIConfig) Validate() error {
	if c.QuestionCount < 0 || c.QuestionCount > 100 {
		return fmt.Errorf("config error: 'question_count' must be between 0 and 100")
	}
	if c.Provider != "" {
		if _, ok := providerKeyEnv[llm.Provider(strings.ToLower(c.Provider))]; !ok {
			return fmt.Errorf("config error: unsupported provider %q", c.Provider)
		}
	}
	for i, jc := range c.JobConfigs {
		if strings.TrimSpace(jc.Role) == "" {
			return fmt.Errorf("config error: job_configs[%d] has no role", i)
		}
		if jc.Tier != "" && !jc.Tier.Valid() {
			return fmt.Errorf("config error: job_configs[%d] has unknown experienceLevel %q", i, jc.Tier)
		}
	}
	return nil
}

// MergeWithDefaults returns a copy with empty fields filled from defaults.
func (c *CLIConfig) MergeWithDefaults(defaults CLIConfig) CLIConfig {
	result := *c

	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Role == "" {
		result.Role = defaults.Role
	}
	if len(result.JobConfigs) == 0 {
		result.JobConfigs = defaults.JobConfigs
	}
	if result.QuestionCount == 0 {
		result.QuestionCount = defaults.QuestionCount
	}

	// Bool fields: cannot distinguish unset from false, so flags always win

	return result
}
