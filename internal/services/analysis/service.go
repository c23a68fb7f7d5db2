// Package analysis builds the two model requests of a pipeline run: the impact
// analysis and the manual test case draft.
package analysis

import (
	"context"
	"io"

	"github.com/Tomas-vilte/MateRisk/internal/diff"
	domainErrors "github.com/Tomas-vilte/MateRisk/internal/domain/errors"
	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
	"github.com/Tomas-vilte/MateRisk/internal/logger"
)

var _ ports.Analyzer = (*Service)(nil)

type Service struct {
	provider ports.CompletionProvider
	lang     string
	selfDir  string
}

func NewService(provider ports.CompletionProvider, lang, selfDir string) *Service {
	return &Service{
		provider: provider,
		lang:     lang,
		selfDir:  selfDir,
	}
}

// SummarizeImpact asks for the impact analysis JSON of rawDiff. ticket may be nil.
func (s *Service) SummarizeImpact(ctx context.Context, rawDiff string, tree *models.ProjectTree, ticket *models.TicketContext) (string, error) {
	data := s.promptData(rawDiff, tree)
	budget := ImpactTokens
	if ticket != nil {
		data.Ticket = &TicketPromptData{
			Key:                ticket.Key,
			Title:              ticket.Title,
			Description:        Truncate(ticket.Description, MaxDescriptionChars),
			AcceptanceCriteria: Truncate(ticket.AcceptanceCriteria, MaxAcceptanceCriteriaChars),
			Status:             ticket.Status,
			Priority:           ticket.Priority,
			IssueType:          ticket.IssueType,
		}
		budget = ImpactWithTicketTokens
	}

	prompt, err := RenderPrompt("impact", GetImpactPromptTemplate(s.lang), data)
	if err != nil {
		return "", domainErrors.NewAppError(domainErrors.TypeInternal, "error building impact prompt", err)
	}

	logger.Info(ctx, "requesting impact analysis",
		"has_ticket", ticket != nil,
		"max_tokens", budget)
	return s.complete(ctx, prompt, budget)
}

// GenerateTestCases asks for the test case set JSON of rawDiff.
func (s *Service) GenerateTestCases(ctx context.Context, rawDiff string, tree *models.ProjectTree, owner, repo string) (string, error) {
	data := s.promptData(rawDiff, tree)
	data.RepoOwner = owner
	data.RepoName = repo

	prompt, err := RenderPrompt("test_cases", GetTestCasesPromptTemplate(s.lang), data)
	if err != nil {
		return "", domainErrors.NewAppError(domainErrors.TypeInternal, "error building test case prompt", err)
	}

	logger.Info(ctx, "requesting test cases", "max_tokens", TestCaseTokens)
	return s.complete(ctx, prompt, TestCaseTokens)
}

// promptData re-filters the diff so the agent never reviews itself, then truncates.
func (s *Service) promptData(rawDiff string, tree *models.ProjectTree) PromptData {
	return PromptData{
		Tree: Truncate(tree.String(), MaxTreeChars),
		Diff: Truncate(diff.FilterSelfReferences(rawDiff, s.selfDir), MaxDiffChars),
	}
}

func (s *Service) complete(ctx context.Context, prompt string, budget int) (string, error) {
	if s.provider == nil {
		return "", domainErrors.NewModelError(domainErrors.ErrAIKeyMissing.Message, nil).
			WithSuggestion(domainErrors.ErrAIKeyMissing.Suggestion)
	}

	out, err := s.provider.Complete(ctx, ports.CompletionRequest{
		System:    GetSystemPrompt(s.lang),
		Prompt:    prompt,
		MaxTokens: budget,
	})
	if err != nil {
		if domainErrors.IsType(err, domainErrors.TypeAI) {
			return "", err
		}
		return "", domainErrors.NewModelError(domainErrors.ErrAIGeneration.Message, err).
			WithContext("provider", s.provider.Name())
	}
	return out, nil
}

// Close releases the provider when it holds a client.
func (s *Service) Close() error {
	if c, ok := s.provider.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
