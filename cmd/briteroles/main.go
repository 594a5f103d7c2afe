// Package main provides the entry point for the BriteRoles HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "briteroles",
	Short: "BriteRoles job description generator",
	Long:  "BriteRoles serves the BriteCo job description generator: form-driven Claude generation, draft and saved-role storage, and Google-gated access.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
