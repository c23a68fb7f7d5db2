package factory

import (
	"context"
	"fmt"

	"github.com/Tomas-vilte/MateRisk/internal/cli/input"
	"github.com/Tomas-vilte/MateRisk/internal/config"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
	"github.com/Tomas-vilte/MateRisk/internal/i18n"
	"github.com/Tomas-vilte/MateRisk/internal/infrastructure/ai/gemini"
	"github.com/Tomas-vilte/MateRisk/internal/infrastructure/ai/openai"
	"github.com/Tomas-vilte/MateRisk/internal/infrastructure/ai/registry"
	"github.com/Tomas-vilte/MateRisk/internal/infrastructure/di"
	"github.com/Tomas-vilte/MateRisk/internal/logger"
)

// PipelineFactory loads the configuration of one invocation and wires the pipeline.
type PipelineFactory struct {
	providers []registry.AIProviderFactory
	// setup runs on the container before the pipeline is built
	setup func(*di.Container)
}

func NewPipelineFactory() *PipelineFactory {
	return &PipelineFactory{
		providers: []registry.AIProviderFactory{
			openai.NewOpenAIProviderFactory(),
			gemini.NewGeminiProviderFactory(),
		},
	}
}

func (f *PipelineFactory) CreatePipeline(ctx context.Context, rt input.Runtime) (ports.PipelineRunner, error) {
	logger.Initialize(rt.Debug, rt.Verbose)

	cfg, err := config.LoadConfig(rt.ConfigPath)
	if err != nil {
		return nil, err
	}

	trans, err := i18n.NewTranslations(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("error loading translations: %w", err)
	}

	container := di.NewContainer(cfg, trans)
	for _, p := range f.providers {
		if err := container.RegisterAIProvider(p.Name(), p); err != nil {
			return nil, err
		}
	}
	if f.setup != nil {
		f.setup(container)
	}

	pipeline, err := container.Pipeline(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline, nil
}
