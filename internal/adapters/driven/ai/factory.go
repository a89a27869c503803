// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/paperchat/paperchat/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/paperchat/paperchat/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/paperchat/paperchat/internal/adapters/driven/llm/ollama"
	openaillm "github.com/paperchat/paperchat/internal/adapters/driven/llm/openai"
	"github.com/paperchat/paperchat/internal/core/domain"
	"github.com/paperchat/paperchat/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the embedding adapter for the configured
// provider.
func CreateEmbeddingService(settings domain.Settings) (driven.EmbeddingService, error) {
	switch settings.Provider {
	case domain.ProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.EmbeddingModel,
		}), nil

	case domain.ProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.EmbeddingModel,
		})

	default:
		return nil, fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, settings.Provider)
	}
}

// CreateLLMService creates the completion adapter for the configured
// provider.
func CreateLLMService(settings domain.Settings) (driven.LLMService, error) {
	switch settings.Provider {
	case domain.ProviderOllama:
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.ChatModel,
		}), nil

	case domain.ProviderOpenAI:
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.ChatModel,
		})

	default:
		return nil, fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, settings.Provider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and
// validates connectivity with a lightweight ping.
func CreateAndValidateEmbeddingService(settings domain.Settings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// CreateAndValidateLLMService creates a completion service and validates
// connectivity with a lightweight ping.
func CreateAndValidateLLMService(settings domain.Settings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}
