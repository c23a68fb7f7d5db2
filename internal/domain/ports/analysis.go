package ports

import (
	"context"

	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
)

// Analyzer runs the two model calls of a pipeline run. Both return the raw JSON
// text of the model; parsing is left to the caller.
type Analyzer interface {
	SummarizeImpact(ctx context.Context, diff string, tree *models.ProjectTree, ticket *models.TicketContext) (string, error)
	GenerateTestCases(ctx context.Context, diff string, tree *models.ProjectTree, owner, repo string) (string, error)
}
