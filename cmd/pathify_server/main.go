// Package main provides the entry point for the Pathify HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pathify_server",
	Short: "Pathify AI Backend",
	Long:  "Pathify scores career assessments, serves staged career roadmaps, and manages waitlist and contact submissions via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
