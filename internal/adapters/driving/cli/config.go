package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/paperchat/paperchat/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change settings stored in the config file.

Settings take effect on the next command; nothing already ingested is
re-embedded when the models change.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Available keys:

  provider         AI backend: ollama or openai
  base_url         provider endpoint override
  api_key          API key for OpenAI-compatible endpoints
  embedding_model  embedding model name
  chat_model       completion model name
  cache_dir        directory for vector store files
  data_dir         directory for the document catalog
  chunk_window     chunk size in characters
  chunk_overlap    overlap between consecutive chunks
  top_k            chunks retrieved per question`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	in, err := getInfra()
	if err != nil {
		return err
	}
	settings := in.config.Settings()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Provider]")
	cmd.Printf("  Provider: %s\n", settings.Provider)
	if settings.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.BaseURL)
	}
	if settings.Provider == domain.ProviderOpenAI {
		if settings.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Printf("  Embedding model: %s\n", settings.EmbeddingModel)
	cmd.Printf("  Chat model: %s\n", settings.ChatModel)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Chunk window: %d chars\n", settings.ChunkWindow)
	cmd.Printf("  Chunk overlap: %d chars\n", settings.ChunkOverlap)
	cmd.Printf("  Top K: %d\n", settings.TopK)
	cmd.Println()

	cmd.Printf("Config file: %s\n", in.config.Path())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	in, err := getInfra()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	settings := in.config.Settings()

	switch key {
	case "provider":
		settings.Provider = domain.Provider(value)
	case "base_url":
		settings.BaseURL = value
	case "api_key":
		settings.APIKey = value
	case "embedding_model":
		settings.EmbeddingModel = value
	case "chat_model":
		settings.ChatModel = value
	case "cache_dir":
		settings.CacheDir = value
	case "data_dir":
		settings.DataDir = value
	case "chunk_window":
		n, err := parsePositive(value)
		if err != nil {
			return fmt.Errorf("chunk_window: %w", err)
		}
		settings.ChunkWindow = n
	case "chunk_overlap":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("chunk_overlap: must be a non-negative integer")
		}
		settings.ChunkOverlap = n
	case "top_k":
		n, err := parsePositive(value)
		if err != nil {
			return fmt.Errorf("top_k: %w", err)
		}
		settings.TopK = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := in.config.Update(settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

func parsePositive(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("must be a positive integer")
	}
	return n, nil
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
