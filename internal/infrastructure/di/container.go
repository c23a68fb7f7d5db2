package di

import (
	"context"

	"github.com/Tomas-vilte/MateRisk/internal/config"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
	"github.com/Tomas-vilte/MateRisk/internal/i18n"
	"github.com/Tomas-vilte/MateRisk/internal/infrastructure/ai/registry"
	"github.com/Tomas-vilte/MateRisk/internal/infrastructure/email"
	"github.com/Tomas-vilte/MateRisk/internal/infrastructure/testmgmt"
	"github.com/Tomas-vilte/MateRisk/internal/infrastructure/tickets/jira"
	"github.com/Tomas-vilte/MateRisk/internal/infrastructure/vcs/github"
	"github.com/Tomas-vilte/MateRisk/internal/logger"
	"github.com/Tomas-vilte/MateRisk/internal/services"
	"github.com/Tomas-vilte/MateRisk/internal/services/analysis"
)

// Container gestiona las dependencias de la aplicación
type Container struct {
	config       *config.Config
	translations *i18n.Translations

	// Registries
	aiRegistry *registry.AIProviderRegistry

	// Services (lazy initialized)
	sourceFetcher   ports.SourceFetcher
	ticketService   ports.TicketService
	testCaseCreator ports.TestCaseCreator
	mailer          ports.Mailer
	analyzer        ports.Analyzer
}

// NewContainer crea un nuevo contenedor de dependencias
func NewContainer(cfg *config.Config, trans *i18n.Translations) *Container {
	return &Container{
		config:       cfg,
		translations: trans,
		aiRegistry:   registry.NewAIProviderRegistry(),
	}
}

// RegisterAIProvider registra un proveedor de IA
func (c *Container) RegisterAIProvider(name string, factory registry.AIProviderFactory) error {
	return c.aiRegistry.Register(name, factory)
}

// SetSourceFetcher reemplaza el cliente de GitHub
func (c *Container) SetSourceFetcher(fetcher ports.SourceFetcher) {
	c.sourceFetcher = fetcher
}

// SetTicketService reemplaza el cliente de Jira
func (c *Container) SetTicketService(tickets ports.TicketService) {
	c.ticketService = tickets
}

// SetTestCaseCreator reemplaza el cliente de gestión de pruebas
func (c *Container) SetTestCaseCreator(creator ports.TestCaseCreator) {
	c.testCaseCreator = creator
}

// SetMailer reemplaza el envío de correo
func (c *Container) SetMailer(mailer ports.Mailer) {
	c.mailer = mailer
}

// GetAIRegistry retorna el registro de proveedores AI
func (c *Container) GetAIRegistry() *registry.AIProviderRegistry {
	return c.aiRegistry
}

// GetSourceFetcher retorna el cliente de GitHub (lazy initialization)
func (c *Container) GetSourceFetcher() ports.SourceFetcher {
	if c.sourceFetcher == nil {
		c.sourceFetcher = github.NewGitHubClient(c.config.GitHub.Token, c.config.SelfDirectory)
	}
	return c.sourceFetcher
}

// GetTicketService retorna el cliente de Jira, o nil si Jira no está configurado
func (c *Container) GetTicketService() ports.TicketService {
	if c.ticketService == nil && c.config.HasJira() {
		c.ticketService = jira.NewJiraService(c.config.Jira.BaseURL, c.config.Jira.Email, c.config.Jira.APIToken, nil)
	}
	return c.ticketService
}

// GetTestCaseCreator retorna el cliente de gestión de pruebas, o nil si no está configurado
func (c *Container) GetTestCaseCreator() ports.TestCaseCreator {
	if c.testCaseCreator == nil && c.config.HasTestManagement() {
		tm := c.config.TestManagement
		c.testCaseCreator = testmgmt.NewClient(tm.BaseURL, tm.APIKey, tm.ProjectID, nil)
	}
	return c.testCaseCreator
}

// GetMailer retorna el cliente SMTP. Sin configuración SMTP el envío solo se registra.
func (c *Container) GetMailer() ports.Mailer {
	if c.mailer == nil {
		c.mailer = email.NewMailer(c.config.Email)
	}
	return c.mailer
}

// GetAnalyzer crea el servicio de análisis con el proveedor de IA activo
func (c *Container) GetAnalyzer(ctx context.Context) (ports.Analyzer, error) {
	if c.analyzer != nil {
		return c.analyzer, nil
	}

	provider, err := c.aiRegistry.Create(ctx, c.config)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "ai provider ready", "provider", provider.Name())

	c.analyzer = analysis.NewService(provider, c.config.Language, c.config.SelfDirectory)
	return c.analyzer, nil
}

// Pipeline valida la configuración y arma el orquestador
func (c *Container) Pipeline(ctx context.Context) (*services.Pipeline, error) {
	if err := c.config.Validate(); err != nil {
		return nil, err
	}

	analyzer, err := c.GetAnalyzer(ctx)
	if err != nil {
		return nil, err
	}

	return services.NewPipeline(c.config, c.translations, services.Dependencies{
		Source:    c.GetSourceFetcher(),
		Analyzer:  analyzer,
		Tickets:   c.GetTicketService(),
		TestCases: c.GetTestCaseCreator(),
		Mailer:    c.GetMailer(),
	}), nil
}

// GetConfig retorna la configuración
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetTranslations retorna las traducciones
func (c *Container) GetTranslations() *i18n.Translations {
	return c.translations
}
