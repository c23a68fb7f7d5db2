package ports

import (
	"context"

	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
)

// PipelineRunner processes one pull request event.
type PipelineRunner interface {
	Run(ctx context.Context, event models.TriggerEvent) (models.PipelineResult, error)
	// Close releases the clients held by the runner.
	Close() error
}
