package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/career-prep/internal/observability"
	"github.com/spf13/cobra"
)

var (
	questionsRole  string
	questionsCount int
	questionsJSON  bool
)

var generateQuestionsCmd = &cobra.Command{
	Use:   "generate-questions",
	Short: "Generate a multiple-choice interview assessment",
	RunE:  runGenerateQuestions,
}

func init() {
	generateQuestionsCmd.Flags().StringVarP(&questionsRole, "role", "r", "", "Target role (default: config file role or Software Engineer)")
	generateQuestionsCmd.Flags().IntVarP(&questionsCount, "count", "n", 0, "Number of questions (default: config file question_count or 35)")
	generateQuestionsCmd.Flags().BoolVar(&questionsJSON, "json", false, "Print the questions as JSON")
	rootCmd.AddCommand(generateQuestionsCmd)
}

func runGenerateQuestions(cmd *cobra.Command, _ []string) error {
	if questionsCount < 0 || questionsCount > 100 {
		return fmt.Errorf("--count must be between 1 and 100")
	}

	ctx := context.Background()
	session, err := newCLISession(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	role := questionsRole
	if role == "" {
		role = session.file.Role
	}
	count := questionsCount
	if count == 0 {
		count = session.file.QuestionCount
	}

	questions, err := session.pipeline.GenerateQuestions(ctx, role, count)
	if err != nil {
		return err
	}

	if questionsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(questions)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintQuestions(role, questions)
	return nil
}
