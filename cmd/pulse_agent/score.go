package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-pulse/internal/observability"
	"github.com/jonathan/candidate-pulse/internal/scoring"
	"github.com/jonathan/candidate-pulse/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a feedback submission from a JSON file or stdin",
	Long:  "Read a feedback submission as JSON, run the full scoring pipeline, and print the result as indented JSON.",
	RunE:  runScore,
}

var (
	scoreInputFile string
	scoreVerbose   bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreInputFile, "in", "i", "", "Path to submission JSON file (defaults to stdin)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a formatted summary to stderr")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	var data []byte
	var err error
	if scoreInputFile != "" {
		data, err = os.ReadFile(scoreInputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	result, err := scoreSubmission(data)
	if err != nil {
		return err
	}

	if scoreVerbose {
		observability.NewPrinter(os.Stderr).PrintResult(result)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// scoreSubmission parses and scores one submission document.
func scoreSubmission(data []byte) (*scoring.Result, error) {
	var sub types.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("failed to parse submission JSON: %w", err)
	}
	if err := sub.Validate(); err != nil {
		return nil, fmt.Errorf("invalid submission: %w", err)
	}

	composer := scoring.NewComposer(scoring.HTTPProfile)
	result, err := composer.Score(&sub)
	if err != nil {
		return nil, err
	}
	return result, nil
}
