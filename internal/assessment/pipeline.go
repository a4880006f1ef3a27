package assessment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-prep/internal/llm"
	"github.com/jonathan/career-prep/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ChatApology replaces an empty assistant completion
const ChatApology = "I apologize, but I couldn't process your request. Please try again."

// Store persists scored resumes
type Store interface {
	CreateResume(ctx context.Context, record *types.ResumeRecord) error
}

// TaskSettings selects the model tier and sampling parameters for one kind of call
type TaskSettings struct {
	Tier        llm.ModelTier
	Temperature float64
	MaxTokens   int
}

// Settings holds the per-task call parameters
type Settings struct {
	Parse     TaskSettings
	Fit       TaskSettings
	Code      TaskSettings
	Questions TaskSettings
	Evaluate  TaskSettings
	Chat      TaskSettings

	// FitConcurrency bounds the number of fit scoring calls in flight per resume
	FitConcurrency int
}

// DefaultSettings returns the standard call parameters for every task.
func DefaultSettings() Settings {
	return Settings{
		Parse:          TaskSettings{Tier: llm.TierLite, Temperature: 0.1, MaxTokens: 2500},
		Fit:            TaskSettings{Tier: llm.TierLite, Temperature: 0.2, MaxTokens: 2000},
		Code:           TaskSettings{Tier: llm.TierStandard, Temperature: 0.3, MaxTokens: 2000},
		Questions:      TaskSettings{Tier: llm.TierAdvanced, Temperature: 0.8, MaxTokens: 8000},
		Evaluate:       TaskSettings{Tier: llm.TierLite, Temperature: 0.2, MaxTokens: 1000},
		Chat:           TaskSettings{Tier: llm.TierLite, Temperature: 0.7, MaxTokens: 500},
		FitConcurrency: 4,
	}
}

// Pipeline runs the assessment tasks against an LLM client.
// It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	client   llm.Client
	store    Store
	settings Settings
	logger   *zap.Logger
}

// New creates a pipeline. store may be nil, in which case scored resumes are not persisted.
func New(client llm.Client, store Store, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		client:   client,
		store:    store,
		settings: DefaultSettings(),
		logger:   logger,
	}
}

// WithSettings returns a copy of the pipeline using s.
func (p *Pipeline) WithSettings(s Settings) *Pipeline {
	cp := *p
	if s.FitConcurrency <= 0 {
		s.FitConcurrency = 1
	}
	cp.settings = s
	return &cp
}

func (p *Pipeline) complete(ctx context.Context, task TaskSettings, system, prompt string) (string, error) {
	return p.client.Complete(ctx, llm.Request{
		System:      system,
		Prompt:      prompt,
		Model:       p.client.GetModel(task.Tier),
		Temperature: task.Temperature,
		MaxTokens:   task.MaxTokens,
	})
}

// ParseResume extracts a structured profile from resume text.
func (p *Pipeline) ParseResume(ctx context.Context, text string) (types.ParsedProfile, error) {
	if strings.TrimSpace(text) == "" {
		return types.ParsedProfile{}, &InputError{Field: "text", Message: "resume text is empty"}
	}

	raw, err := p.complete(ctx, p.settings.Parse, "", BuildParsePrompt(text))
	if err != nil {
		return types.ParsedProfile{}, fmt.Errorf("failed to parse resume: %w", err)
	}
	return CoerceProfile(llm.ExtractJSON(raw, llm.ShapeObject))
}

// ScoreFit scores a profile against one job configuration. It never fails:
// any inference or parse error yields the unavailable score.
func (p *Pipeline) ScoreFit(ctx context.Context, profile types.ParsedProfile, cfg types.JobConfiguration) types.FitScore {
	fs, err := p.scoreFit(ctx, profile, cfg)
	if err != nil {
		p.logger.Warn("fit scoring failed",
			zap.String("task", "fit-score"),
			zap.String("config", cfg.Key()),
			zap.Error(err))
		return types.UnavailableFitScore()
	}
	return fs
}

func (p *Pipeline) scoreFit(ctx context.Context, profile types.ParsedProfile, cfg types.JobConfiguration) (types.FitScore, error) {
	raw, err := p.complete(ctx, p.settings.Fit, "", BuildFitPrompt(profile, cfg))
	if err != nil {
		return types.FitScore{}, err
	}
	return CoerceFitScore(llm.ExtractJSON(raw, llm.ShapeObject))
}

// ProgressFunc observes ScoreResume as stages finish. It may be called from several goroutines.
type ProgressFunc func(stage string, data any)

// Progress stages reported to a ProgressFunc
const (
	StageProfile  = "profile"
	StageFitScore = "fit_score"
)

// FitProgress is the payload of a StageFitScore event
type FitProgress struct {
	Key      string         `json:"key"`
	FitScore types.FitScore `json:"fit_score"`
}

// ResumeUpload is extracted resume text with the configurations to score it against
type ResumeUpload struct {
	UserID   uuid.UUID
	Filename string
	Text     string
	Configs  []types.JobConfiguration
	Progress ProgressFunc // optional
}

func (u ResumeUpload) report(stage string, data any) {
	if u.Progress != nil {
		u.Progress(stage, data)
	}
}

// ScoreResume parses the resume, scores it against every configuration, and persists the record.
// Only validation and storage failures are returned; model failures degrade to default values.
func (p *Pipeline) ScoreResume(ctx context.Context, upload ResumeUpload) (*types.ResumeRecord, error) {
	if strings.TrimSpace(upload.Filename) == "" {
		return nil, &InputError{Field: "filename", Message: "is required"}
	}
	if strings.TrimSpace(upload.Text) == "" {
		return nil, &InputError{Field: "text", Message: "resume text is empty"}
	}

	configs := normalizeConfigs(upload.Configs)
	start := time.Now()

	profile, err := p.ParseResume(ctx, upload.Text)
	if err != nil {
		p.logger.Warn("resume parsing failed, using default profile",
			zap.String("task", "parse-resume"),
			zap.String("filename", upload.Filename),
			zap.Error(err))
		profile = types.DefaultProfile(types.ParseFailSummary)
	}
	upload.report(StageProfile, profile)

	scores := make([]types.FitScore, len(configs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.settings.FitConcurrency)
	for i, cfg := range configs {
		g.Go(func() error {
			scores[i] = p.ScoreFit(gctx, profile, cfg)
			upload.report(StageFitScore, FitProgress{Key: cfg.Key(), FitScore: scores[i]})
			return nil
		})
	}
	_ = g.Wait()

	fitScores := make(map[string]types.FitScore, len(configs))
	for i, cfg := range configs {
		fitScores[cfg.Key()] = scores[i]
	}

	record := &types.ResumeRecord{
		UserID:     upload.UserID,
		Filename:   upload.Filename,
		Text:       upload.Text,
		Profile:    profile,
		Confidence: types.Confidence(fitScores),
		FitScores:  fitScores,
	}

	if p.store != nil {
		if err := p.store.CreateResume(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to save resume: %w", err)
		}
	}

	p.logger.Info("resume scored",
		zap.String("filename", upload.Filename),
		zap.Int("configs", len(configs)),
		zap.Float64("confidence", record.Confidence),
		zap.Duration("duration", time.Since(start)))
	return record, nil
}

// normalizeConfigs drops configurations without a role and repeated keys.
// An empty result is replaced by the default configuration.
func normalizeConfigs(configs []types.JobConfiguration) []types.JobConfiguration {
	out := make([]types.JobConfiguration, 0, len(configs))
	seen := make(map[string]bool, len(configs))
	for _, cfg := range configs {
		cfg = cfg.Normalize()
		if cfg.Role == "" || seen[cfg.Key()] {
			continue
		}
		seen[cfg.Key()] = true
		out = append(out, cfg)
	}
	if len(out) == 0 {
		out = append(out, types.DefaultJobConfiguration())
	}
	return out
}

// AnalyzeCode reviews a code submission. Inference failures are returned;
// unparseable output yields the fallback analysis built from the raw completion.
func (p *Pipeline) AnalyzeCode(ctx context.Context, sub types.CodeSubmission) (types.CodeAnalysis, error) {
	switch {
	case strings.TrimSpace(sub.Code) == "":
		return types.CodeAnalysis{}, &InputError{Field: "code", Message: "is required"}
	case strings.TrimSpace(sub.Language) == "":
		return types.CodeAnalysis{}, &InputError{Field: "language", Message: "is required"}
	case strings.TrimSpace(sub.ProblemTitle) == "":
		return types.CodeAnalysis{}, &InputError{Field: "problemTitle", Message: "is required"}
	}

	system, prompt := BuildCodePrompt(sub)
	raw, err := p.complete(ctx, p.settings.Code, system, prompt)
	if err != nil {
		return types.CodeAnalysis{}, fmt.Errorf("failed to analyze code: %w", err)
	}

	analysis, err := CoerceCodeAnalysis(llm.ExtractJSON(raw, llm.ShapeObject), sub.Code)
	if err != nil {
		p.logger.Warn("code analysis output unparseable, using fallback",
			zap.String("task", "code-analysis"),
			zap.Error(err))
		return types.FallbackAnalysis(raw, sub.Code), nil
	}
	return analysis, nil
}

// EvaluateAnswer grades an open-ended interview answer on a 0-10 scale.
func (p *Pipeline) EvaluateAnswer(ctx context.Context, req types.EvaluateAnswerRequest) (types.AnswerEvaluation, error) {
	switch {
	case strings.TrimSpace(req.Question) == "":
		return types.AnswerEvaluation{}, &InputError{Field: "question", Message: "is required"}
	case strings.TrimSpace(req.Answer) == "":
		return types.AnswerEvaluation{}, &InputError{Field: "answer", Message: "is required"}
	}
	if strings.TrimSpace(req.Role) == "" {
		req.Role = types.DefaultJobConfiguration().Role
	}

	raw, err := p.complete(ctx, p.settings.Evaluate, "", BuildEvaluatePrompt(req))
	if err != nil {
		return types.AnswerEvaluation{}, fmt.Errorf("failed to evaluate answer: %w", err)
	}

	eval, err := CoerceAnswerEvaluation(llm.ExtractJSON(raw, llm.ShapeObject))
	if err != nil {
		p.logger.Warn("answer evaluation output unparseable",
			zap.String("task", "evaluate-answer"),
			zap.Error(err))
		return types.AnswerEvaluation{
			Feedback:     raw,
			Strengths:    []string{},
			Improvements: []string{},
		}, nil
	}
	return eval, nil
}

// Chat answers a free-form question with the career assistant persona.
func (p *Pipeline) Chat(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", &InputError{Field: "message", Message: "is required"}
	}

	system := BuildAssistantSystemPrompt()
	reply, err := p.complete(ctx, p.settings.Chat, system, message)
	if err != nil {
		if llm.IsEmptyResponse(err) {
			return ChatApology, nil
		}
		return "", fmt.Errorf("failed to get assistant reply: %w", err)
	}
	return reply, nil
}
