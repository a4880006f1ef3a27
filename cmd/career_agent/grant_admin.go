package main

import (
	"context"
	"fmt"

	"github.com/jonathan/career-prep/internal/db"
	"github.com/spf13/cobra"
)

var (
	grantAdminEmail       string
	grantAdminRevoke      bool
	grantAdminDatabaseURL string
)

var grantAdminCmd = &cobra.Command{
	Use:   "grant-admin",
	Short: "Grant or revoke administrator access",
	Long:  "Mark an existing account as an administrator so it can read platform stats and seed the problem catalog.",
	RunE:  runGrantAdmin,
}

func init() {
	grantAdminCmd.Flags().StringVar(&grantAdminEmail, "email", "", "Account email (required)")
	grantAdminCmd.Flags().BoolVar(&grantAdminRevoke, "revoke", false, "Remove administrator access instead")
	grantAdminCmd.Flags().StringVar(&grantAdminDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")
	rootCmd.AddCommand(grantAdminCmd)
}

func runGrantAdmin(cmd *cobra.Command, _ []string) error {
	if grantAdminEmail == "" {
		return fmt.Errorf("--email is required")
	}
	dbURL, err := resolveDatabaseURL(grantAdminDatabaseURL)
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.SetAdmin(ctx, grantAdminEmail, !grantAdminRevoke); err != nil {
		return err
	}
	action := "granted to"
	if grantAdminRevoke {
		action = "revoked from"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Administrator access %s %s\n", action, grantAdminEmail)
	return nil
}
