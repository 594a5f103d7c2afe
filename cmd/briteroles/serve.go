package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/briteco/briteroles/internal/config"
	"github.com/briteco/briteroles/internal/llm"
	"github.com/briteco/briteroles/internal/observability"
	"github.com/briteco/briteroles/internal/server"
	"github.com/briteco/briteroles/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP server that exposes the generation, storage, and auth endpoints plus the app shell.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	var llmClient llm.Client
	if cfg.ClaudeConfigured() {
		client, err := llm.NewClaudeClient(llm.Config{
			APIKey: cfg.AnthropicAPIKey,
			Model:  cfg.ClaudeModel,
		})
		if err != nil {
			return fmt.Errorf("failed to create claude client: %w", err)
		}
		llmClient = client
	} else {
		log.Printf("[WARNING] Claude not available: ANTHROPIC_API_KEY is not set")
	}

	var storeOpts []option.ClientOption
	if cfg.CredentialsFile != "" {
		storeOpts = append(storeOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	var roleStore server.RoleStore
	gcs, err := store.New(cmd.Context(), cfg.Bucket, storeOpts...)
	if err != nil {
		log.Printf("[WARNING] Storage not available: %v", err)
	} else {
		roleStore = gcs
		defer func() {
			if err := gcs.Close(); err != nil {
				log.Printf("[STORE] close failed: %v", err)
			}
		}()
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintStartup(observability.StartupInfo{
		App:             server.AppName,
		Port:            cfg.Port,
		Debug:           cfg.Debug,
		ClaudeReady:     llmClient != nil,
		Model:           claudeModel(llmClient),
		OAuthConfigured: cfg.OAuthConfigured(),
		StoreReady:      roleStore != nil,
		Bucket:          cfg.Bucket,
		AllowedDomain:   cfg.AllowedEmailDomain,
	})

	return server.New(cfg, llmClient, roleStore).Start()
}

func claudeModel(client llm.Client) string {
	if client == nil {
		return ""
	}
	return client.Model()
}
