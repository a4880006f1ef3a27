package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/career-prep/internal/types"
)

//go:embed problem_catalog.json
var problemCatalog []byte

const problemColumns = `id, title, difficulty, topic, description, examples, constraints, test_cases,
	solution_template, companies, acceptance_rate, likes, dislikes, created_at`

// Catalog returns the built-in practice problems inserted by SeedProblems.
func Catalog() ([]types.Problem, error) {
	var problems []types.Problem
	if err := json.Unmarshal(problemCatalog, &problems); err != nil {
		return nil, fmt.Errorf("failed to parse problem catalog: %w", err)
	}
	for i, p := range problems {
		if p.Title == "" || !types.ValidDifficulty(p.Difficulty) {
			return nil, fmt.Errorf("problem catalog entry %d: invalid title or difficulty", i)
		}
	}
	return problems, nil
}

// SeedProblems inserts the catalog problems that are not stored yet and returns how many were added.
func (db *DB) SeedProblems(ctx context.Context) (int, error) {
	problems, err := Catalog()
	if err != nil {
		return 0, err
	}

	added := 0
	for i := range problems {
		ok, err := db.insertProblem(ctx, &problems[i])
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}

// insertProblem stores p unless a problem with the same title exists.
func (db *DB) insertProblem(ctx context.Context, p *types.Problem) (bool, error) {
	examples, err := json.Marshal(nonNil(p.Examples))
	if err != nil {
		return false, fmt.Errorf("failed to marshal examples: %w", err)
	}
	constraints, err := json.Marshal(nonNil(p.Constraints))
	if err != nil {
		return false, fmt.Errorf("failed to marshal constraints: %w", err)
	}
	testCases, err := json.Marshal(nonNil(p.TestCases))
	if err != nil {
		return false, fmt.Errorf("failed to marshal test cases: %w", err)
	}
	template := p.SolutionTemplate
	if template == nil {
		template = map[string]string{}
	}
	templates, err := json.Marshal(template)
	if err != nil {
		return false, fmt.Errorf("failed to marshal solution template: %w", err)
	}
	companies, err := json.Marshal(nonNil(p.Companies))
	if err != nil {
		return false, fmt.Errorf("failed to marshal companies: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO problems (title, difficulty, topic, description, examples, constraints, test_cases,
		     solution_template, companies, acceptance_rate, likes, dislikes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (title) DO NOTHING
		 RETURNING id, created_at`,
		p.Title, p.Difficulty, p.Topic, p.Description, examples, constraints, testCases,
		templates, companies, p.AcceptanceRate, p.Likes, p.Dislikes,
	).Scan(&p.ID, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert problem %q: %w", p.Title, err)
	}
	return true, nil
}

func scanProblem(row pgx.Row) (*types.Problem, error) {
	var p types.Problem
	var examples, constraints, testCases, tmpl, companies []byte
	if err := row.Scan(&p.ID, &p.Title, &p.Difficulty, &p.Topic, &p.Description,
		&examples, &constraints, &testCases, &tmpl, &companies,
		&p.AcceptanceRate, &p.Likes, &p.Dislikes, &p.CreatedAt); err != nil {
		return nil, err
	}

	fields := []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"examples", examples, &p.Examples},
		{"constraints", constraints, &p.Constraints},
		{"test cases", testCases, &p.TestCases},
		{"solution template", tmpl, &p.SolutionTemplate},
		{"companies", companies, &p.Companies},
	}
	for _, f := range fields {
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", f.name, err)
		}
	}
	return &p, nil
}

// GetProblem retrieves a problem by ID. Returns nil, nil when absent.
func (db *DB) GetProblem(ctx context.Context, id int64) (*types.Problem, error) {
	p, err := scanProblem(db.pool.QueryRow(ctx,
		`SELECT `+problemColumns+` FROM problems WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	return p, nil
}

// ListProblems retrieves catalog problems in ID order, narrowed by filter.
func (db *DB) ListProblems(ctx context.Context, filter types.ProblemFilter) ([]types.Problem, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+problemColumns+` FROM problems
		 WHERE ($1::text = '' OR difficulty = $1) AND ($2::text = '' OR topic = $2)
		 ORDER BY id ASC`,
		filter.Difficulty, filter.Topic,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	defer rows.Close()

	problems := []types.Problem{}
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan problem: %w", err)
		}
		problems = append(problems, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	return problems, nil
}
