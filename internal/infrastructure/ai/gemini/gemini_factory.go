package gemini

import (
	"context"

	"github.com/Tomas-vilte/MateRisk/internal/config"
	domainErrors "github.com/Tomas-vilte/MateRisk/internal/domain/errors"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
)

// GeminiProviderFactory implementa AIProviderFactory para Gemini
type GeminiProviderFactory struct{}

func NewGeminiProviderFactory() *GeminiProviderFactory {
	return &GeminiProviderFactory{}
}

func (f *GeminiProviderFactory) CreateProvider(ctx context.Context, cfg *config.Config) (ports.CompletionProvider, error) {
	return NewGeminiProvider(ctx, cfg.AI.Gemini)
}

func (f *GeminiProviderFactory) ValidateConfig(cfg *config.Config) error {
	if cfg.AI.Gemini.APIKey == "" {
		return domainErrors.ErrAIKeyMissing.WithContext("provider", f.Name())
	}
	return nil
}

func (f *GeminiProviderFactory) Name() string {
	return string(config.AIGemini)
}
