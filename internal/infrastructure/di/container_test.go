package di

import (
	"context"
	"testing"

	"github.com/Tomas-vilte/MateRisk/internal/config"
	domainErrors "github.com/Tomas-vilte/MateRisk/internal/domain/errors"
	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
	"github.com/Tomas-vilte/MateRisk/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAIFactory struct {
	mock.Mock
}

func (m *mockAIFactory) CreateProvider(ctx context.Context, cfg *config.Config) (ports.CompletionProvider, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.CompletionProvider), args.Error(1)
}

func (m *mockAIFactory) ValidateConfig(cfg *config.Config) error {
	args := m.Called(cfg)
	return args.Error(0)
}

func (m *mockAIFactory) Name() string {
	return "openai"
}

type stubProvider struct{}

func (stubProvider) Complete(context.Context, ports.CompletionRequest) (string, error) {
	return "{}", nil
}

func (stubProvider) Name() string {
	return "stub"
}

func newContainer(t *testing.T, cfg *config.Config) *Container {
	t.Helper()
	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)
	return NewContainer(cfg, trans)
}

func validConfig() *config.Config {
	cfg := config.Default()
	cfg.GitHub.Token = "gh-token"
	cfg.AI.OpenAI.APIKey = "sk-test"
	return cfg
}

func TestContainer_Pipeline(t *testing.T) {
	ctx := context.Background()

	t.Run("should build the pipeline with the active provider", func(t *testing.T) {
		cfg := validConfig()
		c := newContainer(t, cfg)
		factory := new(mockAIFactory)
		factory.On("ValidateConfig", cfg).Return(nil)
		factory.On("CreateProvider", mock.Anything, cfg).Return(stubProvider{}, nil)
		require.NoError(t, c.RegisterAIProvider("openai", factory))

		pipeline, err := c.Pipeline(ctx)

		require.NoError(t, err)
		assert.NotNil(t, pipeline)
		factory.AssertExpectations(t)
	})

	t.Run("should refuse an incomplete configuration", func(t *testing.T) {
		c := newContainer(t, config.Default())
		factory := new(mockAIFactory)
		require.NoError(t, c.RegisterAIProvider("openai", factory))

		_, err := c.Pipeline(ctx)

		require.Error(t, err)
		assert.True(t, domainErrors.IsType(err, domainErrors.TypeConfiguration))
		factory.AssertNotCalled(t, "CreateProvider", mock.Anything, mock.Anything)
	})

	t.Run("should fail when the provider is not registered", func(t *testing.T) {
		c := newContainer(t, validConfig())

		_, err := c.Pipeline(ctx)

		assert.ErrorIs(t, err, domainErrors.ErrUnknownAIProvider)
	})
}

func TestContainer_OptionalServices(t *testing.T) {
	t.Run("should leave optional integrations unset without configuration", func(t *testing.T) {
		c := newContainer(t, validConfig())

		assert.Nil(t, c.GetTicketService())
		assert.Nil(t, c.GetTestCaseCreator())
		assert.NotNil(t, c.GetMailer())
		assert.NotNil(t, c.GetSourceFetcher())
	})

	t.Run("should build configured integrations", func(t *testing.T) {
		cfg := validConfig()
		cfg.Jira = config.JiraConfig{BaseURL: "https://acme.atlassian.net", Email: "a@b.c", APIToken: "t"}
		cfg.TestManagement = config.TestManagementConfig{BaseURL: "https://tm.example.com", APIKey: "k", ProjectID: "P"}
		c := newContainer(t, cfg)

		assert.NotNil(t, c.GetTicketService())
		assert.NotNil(t, c.GetTestCaseCreator())
	})

	t.Run("should keep injected services", func(t *testing.T) {
		c := newContainer(t, validConfig())
		mailer := new(mockMailer)
		c.SetMailer(mailer)

		assert.Same(t, mailer, c.GetMailer())
	})
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, msg models.EmailMessage) error {
	return m.Called(ctx, msg).Error(0)
}
