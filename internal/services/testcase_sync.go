package services

import (
	"context"

	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
	"github.com/Tomas-vilte/MateRisk/internal/logger"
)

// TestCaseSynchronizer copies generated test cases into the test management service.
type TestCaseSynchronizer struct {
	creator ports.TestCaseCreator
}

// NewTestCaseSynchronizer builds a synchronizer. A nil creator disables syncing.
func NewTestCaseSynchronizer(creator ports.TestCaseCreator) *TestCaseSynchronizer {
	return &TestCaseSynchronizer{creator: creator}
}

// Sync creates one record per test case. Un item que falla se registra y se omite;
// los siguientes se intentan igual.
func (s *TestCaseSynchronizer) Sync(ctx context.Context, set models.TestCaseSet) []models.CreatedTestCase {
	created := make([]models.CreatedTestCase, 0, len(set.TestCases))
	if s.creator == nil {
		logger.Debug(ctx, "test management not configured, sync skipped")
		return created
	}
	if len(set.TestCases) == 0 {
		return created
	}

	for i, tc := range set.TestCases {
		record, err := s.creator.CreateTestCase(ctx, tc)
		if err != nil {
			logger.Warn(ctx, "failed to create test case", "index", i, "title", tc.Title, "error", err)
			continue
		}
		created = append(created, record)
	}

	logger.Info(ctx, "test cases synchronized", "created", len(created), "total", len(set.TestCases))
	return created
}
