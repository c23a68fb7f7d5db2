package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Tomas-vilte/MateRisk/internal/config"
	domainErrors "github.com/Tomas-vilte/MateRisk/internal/domain/errors"
	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	lowImpactJSON  = `{"risk":{"score":"LOW","reasoning":"Documentation only"},"keyChanges":["README updated"],"technicalDetails":{}}`
	emptyTestsJSON = `{"summary":"Nothing to test","testCases":[]}`
	docsDiff       = "diff --git a/README.md b/README.md\n@@ -1 +1 @@\n-a\n+b\n"
)

type pipelineMocks struct {
	source    *MockSourceFetcher
	analyzer  *MockAnalyzer
	tickets   *MockTicketService
	testCases *MockTestCaseCreator
	mailer    *MockMailer
}

func validConfig() *config.Config {
	cfg := config.Default()
	cfg.GitHub.Token = "gh-token"
	cfg.AI.OpenAI.APIKey = "sk-test"
	cfg.Email.Recipient = "team@example.com"
	return cfg
}

func newTestPipeline(t *testing.T, cfg *config.Config, withJira bool) (*Pipeline, pipelineMocks) {
	m := pipelineMocks{
		source:    new(MockSourceFetcher),
		analyzer:  new(MockAnalyzer),
		testCases: new(MockTestCaseCreator),
		mailer:    new(MockMailer),
	}
	deps := Dependencies{
		Source:    m.source,
		Analyzer:  m.analyzer,
		TestCases: m.testCases,
		Mailer:    m.mailer,
	}
	if withJira {
		m.tickets = new(MockTicketService)
		deps.Tickets = m.tickets
	}
	return NewPipeline(cfg, newTrans(t), deps), m
}

func (m pipelineMocks) expectAnalysis(impact, tests string) {
	m.source.On("FetchDiff", mock.Anything, "acme", "shop", "main", "feature/login").Return(docsDiff, nil)
	m.source.On("FetchTree", mock.Anything, "acme", "shop", "feature/login").Return(nil, nil)
	m.analyzer.On("SummarizeImpact", mock.Anything, docsDiff, (*models.ProjectTree)(nil), mock.Anything).Return(impact, nil)
	m.analyzer.On("GenerateTestCases", mock.Anything, docsDiff, (*models.ProjectTree)(nil), "acme", "shop").Return(tests, nil)
}

func TestGate(t *testing.T) {
	tests := []struct {
		name   string
		event  models.TriggerEvent
		passes bool
	}{
		{"opened on main", models.TriggerEvent{Action: "opened", BaseRef: "main"}, true},
		{"synchronize on master", models.TriggerEvent{Action: "synchronize", BaseRef: "master"}, true},
		{"reopened on main", models.TriggerEvent{Action: "reopened", BaseRef: "main"}, true},
		{"merged", models.TriggerEvent{Action: "closed", IsMerged: true, BaseRef: "main"}, true},
		{"closed without merge", models.TriggerEvent{Action: "closed", BaseRef: "main"}, false},
		{"labeled", models.TriggerEvent{Action: "labeled", BaseRef: "main"}, false},
		{"other base branch", models.TriggerEvent{Action: "opened", BaseRef: "develop"}, false},
		{"base branch is matched exactly", models.TriggerEvent{Action: "opened", BaseRef: "Main"}, false},
		{"empty event", models.TriggerEvent{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := Gate(tt.event)

			assert.Equal(t, tt.passes, ok)
			if tt.passes {
				assert.Empty(t, reason)
			} else {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

func TestPipeline_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("should skip gated events without touching collaborators", func(t *testing.T) {
		p, m := newTestPipeline(t, config.Default(), true)
		event := testEvent()
		event.BaseRef = "develop"

		result, err := p.Run(ctx, event)

		require.NoError(t, err)
		assert.Equal(t, models.StatusSkipped, result.Status)
		assert.NotEmpty(t, result.Reason)
		m.source.AssertNotCalled(t, "FetchDiff", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.analyzer.AssertNotCalled(t, "SummarizeImpact", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		m.tickets.AssertNotCalled(t, "GetTicket", mock.Anything, mock.Anything)
	})

	t.Run("should fail on missing configuration before any call", func(t *testing.T) {
		p, m := newTestPipeline(t, config.Default(), false)

		result, err := p.Run(ctx, testEvent())

		require.Error(t, err)
		assert.True(t, domainErrors.IsType(err, domainErrors.TypeConfiguration))
		assert.Equal(t, models.StatusError, result.Status)
		assert.Contains(t, result.Error, "GITHUB_TOKEN")
		m.source.AssertNotCalled(t, "FetchDiff", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should report a documentation change end to end", func(t *testing.T) {
		p, m := newTestPipeline(t, validConfig(), false)
		m.expectAnalysis(lowImpactJSON, emptyTestsJSON)
		m.mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg models.EmailMessage) bool {
			return msg.To[0] == "team@example.com" && msg.Subject == "[LOW] Risk report for acme/shop #7: Add login"
		})).Return(nil).Once()

		result, err := p.Run(ctx, testEvent())

		require.NoError(t, err)
		assert.Equal(t, models.StatusSuccess, result.Status)
		assert.Equal(t, models.RiskLow, result.Risk)
		require.NotNil(t, result.TestCaseCount)
		assert.Equal(t, 0, *result.TestCaseCount)
		assert.False(t, result.CommentPosted)
		m.mailer.AssertNumberOfCalls(t, "Send", 1)
		m.testCases.AssertNotCalled(t, "CreateTestCase", mock.Anything, mock.Anything)
	})

	t.Run("should comment on the detected ticket when jira is configured", func(t *testing.T) {
		p, m := newTestPipeline(t, validConfig(), true)
		event := testEvent()
		event.PRTitle = "PROJ-1 t"

		ticket := &models.TicketContext{Key: "PROJ-1", Title: "Docs"}
		m.source.On("FetchDiff", mock.Anything, "acme", "shop", "main", "feature/login").Return(docsDiff, nil)
		m.source.On("FetchTree", mock.Anything, "acme", "shop", "feature/login").Return(nil, nil)
		m.tickets.On("GetTicket", mock.Anything, "PROJ-1").Return(ticket, nil)
		m.analyzer.On("SummarizeImpact", mock.Anything, docsDiff, (*models.ProjectTree)(nil), ticket).Return(lowImpactJSON, nil)
		m.analyzer.On("GenerateTestCases", mock.Anything, docsDiff, (*models.ProjectTree)(nil), "acme", "shop").Return(emptyTestsJSON, nil)
		m.tickets.On("AddComment", mock.Anything, "PROJ-1", mock.Anything).Return(nil).Once()
		m.mailer.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

		result, err := p.Run(ctx, event)

		require.NoError(t, err)
		assert.Equal(t, models.StatusSuccess, result.Status)
		assert.Equal(t, "PROJ-1", result.TicketKey)
		assert.True(t, result.CommentPosted)
		m.tickets.AssertNumberOfCalls(t, "AddComment", 1)
		m.mailer.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("should continue when the ticket cannot be loaded", func(t *testing.T) {
		p, m := newTestPipeline(t, validConfig(), true)
		event := testEvent()
		event.HeadRef = "feature/login"
		event.PRBody = "Fixes PROJ-2"

		m.expectAnalysis(lowImpactJSON, emptyTestsJSON)
		m.tickets.On("GetTicket", mock.Anything, "PROJ-2").Return(nil, errors.New("404"))
		m.tickets.On("AddComment", mock.Anything, "PROJ-2", mock.Anything).Return(nil)
		m.mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

		result, err := p.Run(ctx, event)

		require.NoError(t, err)
		assert.Equal(t, models.StatusSuccess, result.Status)
		m.analyzer.AssertCalled(t, "SummarizeImpact", mock.Anything, docsDiff, (*models.ProjectTree)(nil), (*models.TicketContext)(nil))
	})

	t.Run("should strip the agent directory from the analysed diff", func(t *testing.T) {
		p, m := newTestPipeline(t, validConfig(), false)
		raw := docsDiff + "diff --git a/pr-risk-agent/index.go b/pr-risk-agent/index.go\n+x\n"

		m.source.On("FetchDiff", mock.Anything, "acme", "shop", "main", "feature/login").Return(raw, nil)
		m.source.On("FetchTree", mock.Anything, "acme", "shop", "feature/login").Return(nil, nil)
		m.analyzer.On("SummarizeImpact", mock.Anything, docsDiff, (*models.ProjectTree)(nil), mock.Anything).Return(lowImpactJSON, nil)
		m.analyzer.On("GenerateTestCases", mock.Anything, docsDiff, (*models.ProjectTree)(nil), "acme", "shop").Return(emptyTestsJSON, nil)
		m.mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

		_, err := p.Run(ctx, testEvent())

		require.NoError(t, err)
		m.analyzer.AssertExpectations(t)
	})

	t.Run("should sync generated test cases", func(t *testing.T) {
		p, m := newTestPipeline(t, validConfig(), false)
		tests := `{"summary":"s","testCases":[{"title":"A","steps":["x"],"expectedResult":"y","priority":"HIGH"},{"title":"B"}]}`
		m.expectAnalysis(lowImpactJSON, tests)
		m.testCases.On("CreateTestCase", mock.Anything, mock.Anything).Return(models.CreatedTestCase{ID: "1"}, nil)
		m.mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

		result, err := p.Run(ctx, testEvent())

		require.NoError(t, err)
		assert.Equal(t, 2, *result.TestCaseCount)
		assert.Equal(t, 2, *result.SyncedTestCases)
	})

	t.Run("should degrade unreadable test cases to an empty set", func(t *testing.T) {
		p, m := newTestPipeline(t, validConfig(), false)
		m.expectAnalysis(lowImpactJSON, `{"testCases": "not a list"}`)
		m.mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

		result, err := p.Run(ctx, testEvent())

		require.NoError(t, err)
		assert.Equal(t, 0, *result.TestCaseCount)
	})

	t.Run("should fail when the impact analysis is unreadable", func(t *testing.T) {
		p, m := newTestPipeline(t, validConfig(), false)
		m.source.On("FetchDiff", mock.Anything, "acme", "shop", "main", "feature/login").Return(docsDiff, nil)
		m.source.On("FetchTree", mock.Anything, "acme", "shop", "feature/login").Return(nil, nil)
		m.analyzer.On("SummarizeImpact", mock.Anything, docsDiff, (*models.ProjectTree)(nil), mock.Anything).Return("not json at all", nil)

		result, err := p.Run(ctx, testEvent())

		require.Error(t, err)
		assert.True(t, domainErrors.IsType(err, domainErrors.TypeParse))
		assert.Equal(t, models.StatusError, result.Status)
		m.analyzer.AssertNotCalled(t, "GenerateTestCases", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should fail when the diff cannot be fetched", func(t *testing.T) {
		p, m := newTestPipeline(t, validConfig(), false)
		fetchErr := domainErrors.NewUpstreamError(domainErrors.TypeVCS, "failed to fetch diff", 404, "Not Found", nil)
		m.source.On("FetchDiff", mock.Anything, "acme", "shop", "main", "feature/login").Return("", fetchErr)

		result, err := p.Run(ctx, testEvent())

		require.Error(t, err)
		assert.Equal(t, 404, domainErrors.UpstreamStatus(err))
		assert.Equal(t, models.StatusError, result.Status)
		m.source.AssertNotCalled(t, "FetchTree", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should fail when the report cannot be sent", func(t *testing.T) {
		p, m := newTestPipeline(t, validConfig(), false)
		m.expectAnalysis(lowImpactJSON, emptyTestsJSON)
		m.mailer.On("Send", mock.Anything, mock.Anything).Return(domainErrors.NewAppError(domainErrors.TypeEmail, "smtp down", nil))

		result, err := p.Run(ctx, testEvent())

		require.Error(t, err)
		assert.True(t, domainErrors.IsType(err, domainErrors.TypeEmail))
		assert.Equal(t, models.StatusError, result.Status)
	})
}

type closingAnalyzer struct {
	*MockAnalyzer
	closed int
}

func (a *closingAnalyzer) Close() error {
	a.closed++
	return nil
}

func TestPipeline_Close(t *testing.T) {
	t.Run("should close an analyzer holding a client", func(t *testing.T) {
		analyzer := &closingAnalyzer{MockAnalyzer: new(MockAnalyzer)}
		pipeline := NewPipeline(config.Default(), newTrans(t), Dependencies{Analyzer: analyzer})

		require.NoError(t, pipeline.Close())
		assert.Equal(t, 1, analyzer.closed)
	})

	t.Run("should ignore analyzers without a client", func(t *testing.T) {
		pipeline := NewPipeline(config.Default(), newTrans(t), Dependencies{Analyzer: new(MockAnalyzer)})

		assert.NoError(t, pipeline.Close())
	})
}
