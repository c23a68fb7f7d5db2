package ports

import (
	"context"

	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
)

// TestCaseCreator creates one record in a test management system.
type TestCaseCreator interface {
	CreateTestCase(ctx context.Context, tc models.TestCase) (models.CreatedTestCase, error)
}

// Mailer delivers a rendered report.
type Mailer interface {
	Send(ctx context.Context, msg models.EmailMessage) error
}
