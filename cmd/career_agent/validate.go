package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jonathan/career-prep/internal/observability"
	"github.com/jonathan/career-prep/internal/schemas"
	"github.com/spf13/cobra"
)

var (
	validateSchema string
	validateInput  string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON document against an embedded schema",
	Long:  fmt.Sprintf("Check a JSON file against one of the embedded schemas: %s.", strings.Join(schemas.Names(), ", ")),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Schema name (required)")
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to the JSON file (required)")
	_ = validateCmd.MarkFlagRequired("schema")
	_ = validateCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if !slices.Contains(schemas.Names(), validateSchema) {
		return fmt.Errorf("unknown schema %q (have %s)", validateSchema, strings.Join(schemas.Names(), ", "))
	}

	err := schemas.ValidateFile(validateSchema, validateInput)
	var validationErr *schemas.ValidationError
	if err != nil && !errors.As(err, &validationErr) {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintValidation(validateSchema, err)
	if err != nil {
		return fmt.Errorf("validation failed")
	}
	return nil
}
