package services

import (
	"context"

	"github.com/Tomas-vilte/MateRisk/internal/adf"
	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/stretchr/testify/mock"
)

type (
	MockSourceFetcher struct {
		mock.Mock
	}

	MockTicketService struct {
		mock.Mock
	}

	MockAnalyzer struct {
		mock.Mock
	}

	MockTestCaseCreator struct {
		mock.Mock
	}

	MockMailer struct {
		mock.Mock
	}
)

func (m *MockSourceFetcher) FetchDiff(ctx context.Context, owner, repo, base, head string) (string, error) {
	args := m.Called(ctx, owner, repo, base, head)
	return args.String(0), args.Error(1)
}

func (m *MockSourceFetcher) FetchTree(ctx context.Context, owner, repo, branch string) (*models.ProjectTree, error) {
	args := m.Called(ctx, owner, repo, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectTree), args.Error(1)
}

func (m *MockTicketService) GetTicket(ctx context.Context, issueKey string) (*models.TicketContext, error) {
	args := m.Called(ctx, issueKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketContext), args.Error(1)
}

func (m *MockTicketService) AddComment(ctx context.Context, issueKey string, doc adf.Document) error {
	args := m.Called(ctx, issueKey, doc)
	return args.Error(0)
}

func (m *MockAnalyzer) SummarizeImpact(ctx context.Context, diff string, tree *models.ProjectTree, ticket *models.TicketContext) (string, error) {
	args := m.Called(ctx, diff, tree, ticket)
	return args.String(0), args.Error(1)
}

func (m *MockAnalyzer) GenerateTestCases(ctx context.Context, diff string, tree *models.ProjectTree, owner, repo string) (string, error) {
	args := m.Called(ctx, diff, tree, owner, repo)
	return args.String(0), args.Error(1)
}

func (m *MockTestCaseCreator) CreateTestCase(ctx context.Context, tc models.TestCase) (models.CreatedTestCase, error) {
	args := m.Called(ctx, tc)
	return args.Get(0).(models.CreatedTestCase), args.Error(1)
}

func (m *MockMailer) Send(ctx context.Context, msg models.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
