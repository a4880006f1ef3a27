package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/career-prep/internal/assessment"
	"github.com/jonathan/career-prep/internal/ingestion"
	"github.com/jonathan/career-prep/internal/observability"
	"github.com/jonathan/career-prep/internal/schemas"
	"github.com/jonathan/career-prep/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	scoreFile    string
	scoreText    string
	scoreConfigs []string
	scoreOut     string
)

var scoreResumeCmd = &cobra.Command{
	Use:   "score-resume",
	Short: "Parse a resume and score it against target roles",
	Long: `Extract a structured profile from a resume (PDF or plain text) and score it against one or more job configurations.
Each --config is role:level:years[:company], e.g. "Backend Engineer:senior:6:Acme".`,
	RunE: runScoreResume,
}

func init() {
	scoreResumeCmd.Flags().StringVarP(&scoreFile, "file", "f", "", "Resume file (.pdf or text)")
	scoreResumeCmd.Flags().StringVar(&scoreText, "text", "", "Resume text (instead of --file)")
	scoreResumeCmd.Flags().StringArrayVarP(&scoreConfigs, "config", "c", nil, "Job configuration role:level:years[:company] (repeatable)")
	scoreResumeCmd.Flags().StringVarP(&scoreOut, "out", "o", "", "Write the scored record as JSON to this path")
	rootCmd.AddCommand(scoreResumeCmd)
}

// parseJobConfigFlag reads role:level:years[:company].
func parseJobConfigFlag(s string) (types.JobConfiguration, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) < 3 {
		return types.JobConfiguration{}, fmt.Errorf("invalid --config %q: want role:level:years[:company]", s)
	}

	role := strings.TrimSpace(parts[0])
	if role == "" {
		return types.JobConfiguration{}, fmt.Errorf("invalid --config %q: role is empty", s)
	}
	tier := types.ExperienceTier(strings.ToLower(strings.TrimSpace(parts[1])))
	if !tier.Valid() {
		return types.JobConfiguration{}, fmt.Errorf("invalid --config %q: unknown level %q", s, parts[1])
	}
	years, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || years < 0 {
		return types.JobConfiguration{}, fmt.Errorf("invalid --config %q: years must be a non-negative integer", s)
	}

	cfg := types.JobConfiguration{Role: role, Tier: tier, Years: years}
	if len(parts) == 4 {
		cfg.Company = strings.TrimSpace(parts[3])
	}
	return cfg, nil
}

// resolveJobConfigs prefers --config flags over the config file's job_configs.
// An empty result lets the pipeline fall back to its default configuration.
func resolveJobConfigs(flags []string, fromFile []types.JobConfiguration) ([]types.JobConfiguration, error) {
	if len(flags) == 0 {
		return fromFile, nil
	}
	out := make([]types.JobConfiguration, 0, len(flags))
	for _, f := range flags {
		cfg, err := parseJobConfigFlag(f)
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, nil
}

// loadDocument ingests the resume named by --file, or wraps --text.
func loadDocument(file, text string) (*ingestion.Document, error) {
	switch {
	case file != "" && text != "":
		return nil, fmt.Errorf("cannot use --file with --text")
	case file != "":
		return ingestion.IngestFromFile(file)
	case strings.TrimSpace(text) != "":
		cleaned := ingestion.CleanText(text)
		return &ingestion.Document{
			Filename: "resume.txt",
			Text:     cleaned,
			Metadata: ingestion.NewMetadata("resume.txt", cleaned, 0, int64(len(text))),
		}, nil
	default:
		return nil, fmt.Errorf("must provide --file or --text")
	}
}

func runScoreResume(cmd *cobra.Command, _ []string) error {
	doc, err := loadDocument(scoreFile, scoreText)
	if err != nil {
		return err
	}

	ctx := context.Background()
	session, err := newCLISession(ctx)
	if err != nil {
		return err
	}
	defer session.Close()
	session.logger.Debug("resume loaded", zap.Object("document", doc.Metadata))

	configs, err := resolveJobConfigs(scoreConfigs, session.file.JobConfigs)
	if err != nil {
		return err
	}

	record, err := session.pipeline.ScoreResume(ctx, assessment.ResumeUpload{
		Filename: doc.Filename,
		Text:     doc.Text,
		Configs:  configs,
		Progress: func(stage string, data any) {
			if fp, ok := data.(assessment.FitProgress); ok {
				session.logger.Debug("progress", zap.String("stage", stage), zap.String("key", fp.Key))
				return
			}
			session.logger.Debug("progress", zap.String("stage", stage))
		},
	})
	if err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}

	checkRecord(session.logger, record)

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintProfile(&record.Profile)
	printer.PrintFitScores(record.FitScores)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Overall confidence: %.0f\n", record.Confidence)

	if scoreOut != "" {
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		if err := os.WriteFile(scoreOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", scoreOut)
	}
	return nil
}

// checkRecord validates the profile and each fit score against their schemas, logging any drift.
func checkRecord(logger *zap.Logger, record *types.ResumeRecord) {
	check := func(schema, key string, v any) {
		data, err := json.Marshal(v)
		if err != nil {
			return
		}
		if err := schemas.Validate(schema, data); err != nil {
			logger.Warn("output does not match schema",
				zap.String("schema", schema),
				zap.String("key", key),
				zap.Error(err))
		}
	}
	check(schemas.ParsedProfile, "profile", record.Profile)
	for key, fs := range record.FitScores {
		check(schemas.FitScore, key, fs)
	}
}
