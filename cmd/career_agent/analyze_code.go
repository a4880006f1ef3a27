package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/career-prep/internal/observability"
	"github.com/jonathan/career-prep/internal/types"
	"github.com/spf13/cobra"
)

var (
	analyzeFile        string
	analyzeLanguage    string
	analyzeTitle       string
	analyzeDescription string
)

var analyzeCodeCmd = &cobra.Command{
	Use:   "analyze-code",
	Short: "Review a coding solution",
	Long:  "Send a solution file for review: correctness, complexity, code quality, and an optimized alternative.",
	RunE:  runAnalyzeCode,
}

func init() {
	analyzeCodeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Source file to review (required)")
	analyzeCodeCmd.Flags().StringVarP(&analyzeLanguage, "language", "l", "", "Language (default: from the file extension)")
	analyzeCodeCmd.Flags().StringVarP(&analyzeTitle, "title", "t", "", "Problem title (default: the file name)")
	analyzeCodeCmd.Flags().StringVar(&analyzeDescription, "description", "", "Problem description")
	_ = analyzeCodeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(analyzeCodeCmd)
}

var extLanguages = map[string]string{
	".go":   "go",
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".java": "java",
	".c":    "c",
	".cc":   "cpp",
	".cpp":  "cpp",
	".rs":   "rust",
	".rb":   "ruby",
	".kt":   "kotlin",
	".cs":   "csharp",
}

// submissionFromFile builds a code submission, deriving language and title from path when unset.
func submissionFromFile(path, language, title string) (types.CodeSubmission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.CodeSubmission{}, fmt.Errorf("failed to read source file: %w", err)
	}

	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))
	if language == "" {
		lang, ok := extLanguages[ext]
		if !ok {
			return types.CodeSubmission{}, fmt.Errorf("cannot infer language from %q; pass --language", base)
		}
		language = lang
	}
	if title == "" {
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return types.CodeSubmission{Code: string(data), Language: language, ProblemTitle: title}, nil
}

func runAnalyzeCode(cmd *cobra.Command, _ []string) error {
	sub, err := submissionFromFile(analyzeFile, analyzeLanguage, analyzeTitle)
	if err != nil {
		return err
	}
	sub.ProblemDescription = analyzeDescription

	ctx := context.Background()
	session, err := newCLISession(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	analysis, err := session.pipeline.AnalyzeCode(ctx, sub)
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintCodeAnalysis(&analysis)
	return nil
}
