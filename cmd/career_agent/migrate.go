package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/career-prep/internal/db"
	"github.com/spf13/cobra"
)

var (
	migrateDatabaseURL string
	migratePrint       bool
	migrateSeed        bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long:  "Create the assessment tables if they do not exist. With --print the schema is written to stdout instead. With --seed the built-in practice problems are inserted.",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")
	migrateCmd.Flags().BoolVar(&migratePrint, "print", false, "Print the schema without connecting")
	migrateCmd.Flags().BoolVar(&migrateSeed, "seed", false, "Insert missing practice problems after migrating")
	rootCmd.AddCommand(migrateCmd)
}

// resolveDatabaseURL prefers the flag value and falls back to DATABASE_URL.
func resolveDatabaseURL(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}
	return "", fmt.Errorf("DATABASE_URL required (or pass --db-url)")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if migratePrint {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), db.Schema())
		return err
	}

	dbURL, err := resolveDatabaseURL(migrateDatabaseURL)
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Database schema is up to date")

	if migrateSeed {
		added, err := database.SeedProblems(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed problems: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %d practice problems\n", added)
	}
	return nil
}
