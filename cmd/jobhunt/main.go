// Package main provides the entry point for the job hunt backend.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobhunt",
	Short: "Job search assistant backend",
	Long:  "jobhunt scrapes job boards, scores postings against a candidate profile with an LLM, generates tailored application documents, and serves the whole flow over a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
