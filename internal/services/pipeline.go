package services

import (
	"context"
	"fmt"
	"io"

	"github.com/Tomas-vilte/MateRisk/internal/config"
	"github.com/Tomas-vilte/MateRisk/internal/diff"
	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
	"github.com/Tomas-vilte/MateRisk/internal/i18n"
	"github.com/Tomas-vilte/MateRisk/internal/infrastructure/ai/parser"
	"github.com/Tomas-vilte/MateRisk/internal/logger"
	"github.com/Tomas-vilte/MateRisk/internal/report"
	"golang.org/x/sync/errgroup"
)

var (
	triggerActions = map[string]bool{
		"opened":      true,
		"synchronize": true,
		"reopened":    true,
		"closed":      true,
	}
	protectedBranches = map[string]bool{
		"master": true,
		"main":   true,
	}
)

// Gate decide si el evento dispara el pipeline. Si no, devuelve el motivo.
func Gate(event models.TriggerEvent) (bool, string) {
	if !triggerActions[event.Action] {
		return false, fmt.Sprintf("action %q does not trigger an analysis", event.Action)
	}
	if event.Action == "closed" && !event.IsMerged {
		return false, "pull request closed without merge"
	}
	if !protectedBranches[event.BaseRef] {
		return false, fmt.Sprintf("base branch %q is not main or master", event.BaseRef)
	}
	return true, ""
}

// Dependencies groups the collaborators of a Pipeline. Tickets, TestCases and
// Mailer may be nil when the matching integration is not configured.
type Dependencies struct {
	Source    ports.SourceFetcher
	Analyzer  ports.Analyzer
	Tickets   ports.TicketService
	TestCases ports.TestCaseCreator
	Mailer    ports.Mailer
}

var _ ports.PipelineRunner = (*Pipeline)(nil)

type Pipeline struct {
	cfg       *config.Config
	source    ports.SourceFetcher
	analyzer  ports.Analyzer
	tickets   ports.TicketService
	commenter *TicketCommenter
	sync      *TestCaseSynchronizer
	compiler  *report.Compiler
	mailer    ports.Mailer
}

func NewPipeline(cfg *config.Config, trans *i18n.Translations, deps Dependencies) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		source:    deps.Source,
		analyzer:  deps.Analyzer,
		tickets:   deps.Tickets,
		commenter: NewTicketCommenter(deps.Tickets, trans),
		sync:      NewTestCaseSynchronizer(deps.TestCases),
		compiler:  report.NewCompiler(trans),
		mailer:    deps.Mailer,
	}
}

// Run processes one event end to end. A fatal error is returned together with
// a result of status error; a gated event is not an error.
func (p *Pipeline) Run(ctx context.Context, event models.TriggerEvent) (models.PipelineResult, error) {
	ctx = logger.With(ctx,
		"pr_number", event.PRNumber,
		"owner", event.RepoOwner,
		"repo", event.RepoName)

	if ok, reason := Gate(event); !ok {
		logger.Info(ctx, "event skipped", "reason", reason)
		return models.Skipped(reason), nil
	}

	if err := p.cfg.Validate(); err != nil {
		return p.fail(ctx, "invalid configuration", err)
	}

	// 1. Diff y árbol del repositorio
	logger.Info(ctx, "fetching diff", "base", event.BaseRef, "head", event.HeadRef)
	rawDiff, err := p.source.FetchDiff(ctx, event.RepoOwner, event.RepoName, event.BaseRef, event.HeadRef)
	if err != nil {
		return p.fail(ctx, "failed to fetch diff", err)
	}

	tree, err := p.source.FetchTree(ctx, event.RepoOwner, event.RepoName, event.HeadRef)
	if err != nil {
		logger.Warn(ctx, "repository tree unavailable", "error", err)
		tree = nil
	}

	bundle := models.DiffBundle{Raw: rawDiff, Filtered: diff.FilterSelfReferences(rawDiff, p.cfg.SelfDirectory)}
	logger.Debug(ctx, "diff filtered", "diff_size", len(bundle.Raw), "size", len(bundle.Filtered))

	// 2. Contexto del ticket (opcional)
	ticketKey := DetectTicketKey(event.PRTitle, event.HeadRef, event.PRBody)
	ticket := p.loadTicket(ctx, ticketKey)
	if ticket != nil && ticket.Key != "" {
		ticketKey = ticket.Key
	}

	// 3. Análisis de impacto y casos de prueba
	rawImpact, err := p.analyzer.SummarizeImpact(ctx, bundle.Filtered, tree, ticket)
	if err != nil {
		return p.fail(ctx, "impact analysis failed", err)
	}
	impact, err := parser.ParseImpactAnalysis(ctx, rawImpact)
	if err != nil {
		return p.fail(ctx, "impact analysis could not be parsed", err)
	}
	logger.Info(ctx, "impact analysis ready", "risk", impact.Risk.Score)

	rawTests, err := p.analyzer.GenerateTestCases(ctx, bundle.Filtered, tree, event.RepoOwner, event.RepoName)
	if err != nil {
		return p.fail(ctx, "test case generation failed", err)
	}
	tests, err := parser.ParseTestCaseSet(ctx, rawTests)
	if err != nil {
		logger.Warn(ctx, "test cases could not be parsed, continuing without them", "error", err)
		tests = models.TestCaseSet{TestCases: []models.TestCase{}}
	}
	logger.Info(ctx, "test cases ready", "count", len(tests.TestCases))

	// 4. Comentario y sincronización en paralelo; cada uno escribe solo su resultado
	var (
		posted  bool
		created []models.CreatedTestCase
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		posted = p.commenter.Post(gctx, ticketKey, event, impact, tests)
		return nil
	})
	g.Go(func() error {
		created = p.sync.Sync(gctx, tests)
		return nil
	})
	_ = g.Wait()

	// 5. Reporte
	html, err := p.compiler.Compile(event, ticketKey, impact, tests)
	if err != nil {
		return p.fail(ctx, "report rendering failed", err)
	}
	if p.mailer != nil {
		msg := models.EmailMessage{
			From:    p.cfg.Email.From,
			Subject: p.compiler.Subject(event, impact),
			HTML:    html,
		}
		if p.cfg.Email.Recipient != "" {
			msg.To = []string{p.cfg.Email.Recipient}
		}
		if err := p.mailer.Send(ctx, msg); err != nil {
			return p.fail(ctx, "report delivery failed", err)
		}
	}

	count := len(tests.TestCases)
	synced := len(created)
	logger.Info(ctx, "pipeline finished", "risk", impact.Risk.Score, "count", count, "created", synced)

	return models.PipelineResult{
		Status:          models.StatusSuccess,
		Risk:            impact.Risk.Score,
		TestCaseCount:   &count,
		SyncedTestCases: &synced,
		TicketKey:       ticketKey,
		CommentPosted:   posted,
	}, nil
}

func (p *Pipeline) loadTicket(ctx context.Context, key string) *models.TicketContext {
	if key == "" || p.tickets == nil {
		return nil
	}
	ticket, err := p.tickets.GetTicket(ctx, key)
	if err != nil {
		logger.Warn(ctx, "ticket context unavailable, continuing without it", "ticket_key", key, "error", err)
		return nil
	}
	logger.Info(ctx, "ticket context loaded", "ticket_key", key)
	return ticket
}

// Close releases the analyzer's model client, if it holds one.
func (p *Pipeline) Close() error {
	if c, ok := p.analyzer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (p *Pipeline) fail(ctx context.Context, msg string, err error) (models.PipelineResult, error) {
	logger.Error(ctx, msg, err)
	return models.Failed(err), err
}
