// Package main implements the resume_scorer CLI tool for scoring resume
// content against job postings.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_scorer",
	Short: "Resume relevance scoring pipeline",
	Long:  "Resume Scorer judges resume sections, entries, and bullets against a job description using embedding similarity and an LLM judge, then combines the component scores into one weighted result.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
