package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/career-prep/internal/assessment"
	"github.com/jonathan/career-prep/internal/config"
	"github.com/jonathan/career-prep/internal/llm"
	"github.com/jonathan/career-prep/internal/observability"
	"github.com/jonathan/career-prep/internal/types"
	"go.uber.org/zap"
)

// cliDefaults fill whatever the config file leaves empty
var cliDefaults = config.CLIConfig{
	Role:          types.DefaultJobConfiguration().Role,
	QuestionCount: types.DefaultQuestionCount,
}

// loadFileConfig reads --config-file when given and merges it over cliDefaults.
func loadFileConfig() (config.CLIConfig, error) {
	if configFilePath == "" {
		return cliDefaults, nil
	}
	fileCfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		return config.CLIConfig{}, err
	}
	if err := fileCfg.Validate(); err != nil {
		return config.CLIConfig{}, err
	}
	return fileCfg.MergeWithDefaults(cliDefaults), nil
}

// applyFileConfig overrides the environment's provider settings with the config file's.
func applyFileConfig(llmCfg config.LLMConfig, fileCfg config.CLIConfig) config.LLMConfig {
	if fileCfg.Provider != "" {
		llmCfg.Provider = strings.ToLower(fileCfg.Provider)
	}
	if fileCfg.APIKey != "" {
		llmCfg.APIKey = fileCfg.APIKey
	}
	return llmCfg
}

// cliSession is what an offline command needs to run assessment tasks.
type cliSession struct {
	pipeline *assessment.Pipeline
	client   llm.Client
	logger   *zap.Logger
	file     config.CLIConfig
}

func (s *cliSession) Close() {
	_ = s.client.Close()
	_ = s.logger.Sync()
}

// newCLISession builds an unpersisted pipeline from the environment and --config-file.
func newCLISession(ctx context.Context) (*cliSession, error) {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return nil, err
	}
	if fileCfg.Verbose {
		verbose = true
	}

	appCfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	llmCfg := applyFileConfig(appCfg.LLM, fileCfg)
	if llmCfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set LLM_API_KEY, the provider key variable, or api_key in --config-file)")
	}

	logger := observability.CLILogger(verbose)
	client, err := llm.NewClient(ctx, llmCfg.ClientConfig(), llmCfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	settings := assessment.DefaultSettings()
	settings.FitConcurrency = llmCfg.FitConcurrency
	logger.Debug("llm client ready",
		zap.String("provider", llmCfg.Provider),
		zap.String("model", client.GetModel(llm.TierStandard)))

	return &cliSession{
		pipeline: assessment.New(client, nil, logger).WithSettings(settings),
		client:   client,
		logger:   logger,
		file:     fileCfg,
	}, nil
}
