package ports

import (
	"context"

	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
)

// SourceFetcher retrieves change data from a version control provider.
type SourceFetcher interface {
	// FetchDiff returns the unified diff between base and head.
	FetchDiff(ctx context.Context, owner, repo, base, head string) (string, error)
	// FetchTree returns the recursive file tree of branch, or nil when it is unavailable.
	FetchTree(ctx context.Context, owner, repo, branch string) (*models.ProjectTree, error)
}
