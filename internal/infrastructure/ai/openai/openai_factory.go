package openai

import (
	"context"

	"github.com/Tomas-vilte/MateRisk/internal/config"
	domainErrors "github.com/Tomas-vilte/MateRisk/internal/domain/errors"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
)

// OpenAIProviderFactory implementa AIProviderFactory para OpenAI
type OpenAIProviderFactory struct{}

func NewOpenAIProviderFactory() *OpenAIProviderFactory {
	return &OpenAIProviderFactory{}
}

func (f *OpenAIProviderFactory) CreateProvider(_ context.Context, cfg *config.Config) (ports.CompletionProvider, error) {
	return NewOpenAIProvider(cfg.AI.OpenAI)
}

func (f *OpenAIProviderFactory) ValidateConfig(cfg *config.Config) error {
	if cfg.AI.OpenAI.APIKey == "" {
		return domainErrors.ErrAIKeyMissing.WithContext("provider", f.Name())
	}
	return nil
}

func (f *OpenAIProviderFactory) Name() string {
	return string(config.AIOpenAI)
}
