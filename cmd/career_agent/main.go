// Package main provides the career_agent CLI: the HTTP API server plus offline assessment commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose        bool
	configFilePath string
)

var rootCmd = &cobra.Command{
	Use:           "career_agent",
	Short:         "Career preparation API server and assessment tools",
	Long:          "career_agent scores resumes against target roles, generates mock interview questions, and reviews coding solutions, either over REST or from the command line.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFilePath, "config-file", "", "JSON file with CLI defaults (provider, api_key, job_configs, role, question_count)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
