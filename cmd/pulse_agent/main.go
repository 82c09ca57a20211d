// Package main provides the entry point for the Candidate Pulse scoring service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pulse_agent",
	Short: "Candidate Pulse feedback scoring service",
	Long:  "Candidate Pulse scores post-interview candidate feedback: lexicon sentiment, text-quality gating, aspect extraction, and a composite experience index, served over a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
