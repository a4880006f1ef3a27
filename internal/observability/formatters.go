// Package observability provides process logging and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-prep/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// shorten cuts s to at most n runes, marking the cut with "..."
func shorten(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, shorten(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList appends up to limit items under a heading.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintProfile outputs a human-readable summary of the parsed candidate profile.
func (p *Printer) PrintProfile(profile *types.ParsedProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Name))
	if profile.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.Email))
	}
	sb.WriteString(fmt.Sprintf("Summary:  %s\n", profile.Summary))
	sb.WriteString(fmt.Sprintf("History:  %d roles, %d degrees, %d projects\n",
		len(profile.Experience), len(profile.Education), len(profile.Projects)))
	sb.WriteString("\n")
	writeList(&sb, "Skills", profile.Skills, maxItemsToShow)

	p.printBox("PARSED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFitScores outputs every configuration's score, best first.
func (p *Printer) PrintFitScores(scores map[string]types.FitScore) {
	if len(scores) == 0 {
		return
	}

	keys := make([]string, 0, len(scores))
	for k := range scores {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if scores[keys[i]].Score != scores[keys[j]].Score {
			return scores[keys[i]].Score > scores[keys[j]].Score
		}
		return keys[i] < keys[j]
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Confidence: %.0f\n\n", types.Confidence(scores)))
	for i, key := range keys {
		fs := scores[key]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, key))
		sb.WriteString(fmt.Sprintf("    Score: %.0f  (skills %.0f, exp %.0f, edu %.0f, projects %.0f)\n",
			fs.Score, fs.Breakdown.SkillsMatch, fs.Breakdown.ExperienceMatch,
			fs.Breakdown.EducationMatch, fs.Breakdown.ProjectsMatch))
		if len(fs.Gaps) > 0 {
			sb.WriteString(fmt.Sprintf("    Gap: %s\n", fs.Gaps[0]))
		}
		if i < len(keys)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("FIT SCORES", sb.String())
}

// PrintCodeAnalysis outputs the headline numbers of a code review.
func (p *Printer) PrintCodeAnalysis(a *types.CodeAnalysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:      %.0f/100\n", a.OverallScore))
	sb.WriteString(fmt.Sprintf("Correctness:  %.0f/100\n", a.Correctness.Score))
	sb.WriteString(fmt.Sprintf("Quality:      %.0f/100\n", a.CodeQuality.Score))
	sb.WriteString(fmt.Sprintf("Time:         %s (optimal %s)\n", a.TimeComplexity.Current, a.TimeComplexity.Optimal))
	sb.WriteString(fmt.Sprintf("Space:        %s (optimal %s)\n", a.SpaceComplexity.Current, a.SpaceComplexity.Optimal))
	if a.Approach.IsOptimal {
		sb.WriteString("Approach:     ✓optimal\n")
	}
	sb.WriteString("\n")
	writeList(&sb, "Issues", a.Correctness.Issues, 3)
	writeList(&sb, "Learning points", a.LearningPoints, 3)

	p.printBox("CODE ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuestions outputs a generated batch grouped by category.
func (p *Printer) PrintQuestions(role string, questions []types.InterviewQuestion) {
	if len(questions) == 0 {
		return
	}

	counts := map[string]int{}
	hard := 0
	for _, q := range questions {
		counts[q.Category]++
		if q.Difficulty == types.DifficultyHard {
			hard++
		}
	}
	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:       %s\n", role))
	sb.WriteString(fmt.Sprintf("Questions:  %d (%d hard)\n\n", len(questions), hard))
	for _, c := range categories {
		sb.WriteString(fmt.Sprintf("  %-28s %d\n", c, counts[c]))
	}
	sb.WriteString("\n")
	for i, q := range questions[:min(len(questions), 3)] {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, q.Question))
	}
	if len(questions) > 3 {
		sb.WriteString(fmt.Sprintf("... and %d more", len(questions)-3))
	}

	p.printBox("INTERVIEW QUESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation reports a schema check result.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(schema string, err error) {
	if err == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ VALID "+schema)
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}
	p.printBox("⚠ INVALID "+schema, strings.TrimSuffix(err.Error(), "\n"))
}
