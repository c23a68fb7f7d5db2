package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tomas-vilte/MateRisk/internal/adf"
	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
	"github.com/Tomas-vilte/MateRisk/internal/i18n"
	"github.com/Tomas-vilte/MateRisk/internal/logger"
	"github.com/Tomas-vilte/MateRisk/internal/regex"
)

// MaxCommentTestCases caps the test cases listed in a ticket comment.
const MaxCommentTestCases = 5

// DetectTicketKey busca una clave de ticket en el título, luego en la rama y
// por último en el cuerpo del PR. Devuelve la primera coincidencia en mayúsculas.
func DetectTicketKey(title, branch, body string) string {
	for _, source := range []string{title, branch, body} {
		if m := regex.TicketKey.FindStringSubmatch(source); m != nil {
			return strings.ToUpper(m[1])
		}
	}
	return ""
}

// TicketCommenter posts the analysis as a comment on the linked ticket.
type TicketCommenter struct {
	tickets ports.TicketService
	trans   *i18n.Translations
}

// NewTicketCommenter builds a commenter. A nil ticket service disables posting.
func NewTicketCommenter(tickets ports.TicketService, trans *i18n.Translations) *TicketCommenter {
	return &TicketCommenter{tickets: tickets, trans: trans}
}

// Post composes and posts the comment. Failures are logged and reported as false.
func (c *TicketCommenter) Post(ctx context.Context, key string, event models.TriggerEvent, analysis models.ImpactAnalysis, tests models.TestCaseSet) bool {
	if key == "" {
		logger.Debug(ctx, "no ticket key, comment skipped")
		return false
	}
	if c.tickets == nil {
		logger.Debug(ctx, "jira not configured, comment skipped", "ticket_key", key)
		return false
	}

	doc := adf.FromMarkdown(c.BuildComment(event, analysis, tests))
	if err := c.tickets.AddComment(ctx, key, doc); err != nil {
		logger.Warn(ctx, "failed to post ticket comment", "ticket_key", key, "error", err)
		return false
	}

	logger.Info(ctx, "ticket comment posted", "ticket_key", key)
	return true
}

// BuildComment renders the comment body in the markdown subset understood by adf.FromMarkdown.
func (c *TicketCommenter) BuildComment(event models.TriggerEvent, analysis models.ImpactAnalysis, tests models.TestCaseSet) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "**%s**\n", c.msg("comment_header", nil))
	sb.WriteString(c.msg("comment_pr_line", map[string]interface{}{
		"Number": event.PRNumber,
		"Title":  event.PRTitle,
		"Repo":   event.FullName(),
	}))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "**%s:** %s\n", c.msg("label_risk", nil), analysis.Risk.Score)
	fmt.Fprintf(&sb, "**%s:** %s\n\n", c.msg("label_reasoning", nil), analysis.Risk.Reasoning)

	fmt.Fprintf(&sb, "**%s:**\n", c.msg("label_key_changes", nil))
	if len(analysis.KeyChanges) == 0 {
		sb.WriteString(c.msg("no_key_changes", nil) + "\n")
	}
	for _, change := range analysis.KeyChanges {
		fmt.Fprintf(&sb, "- %s\n", change)
	}
	sb.WriteString("\n")

	if ra := analysis.RequirementsAlignment; ra != nil {
		c.writeAlignment(&sb, ra)
	}

	fmt.Fprintf(&sb, "**%s:**\n", c.msg("label_technical_details", nil))
	for _, category := range models.TechnicalCategories {
		detail := analysis.TechnicalDetails[category]
		if detail == "" {
			detail = models.DefaultTechnicalImpact
		}
		fmt.Fprintf(&sb, "**%s:** %s\n", category, detail)
	}
	sb.WriteString("\n")

	c.writeTestCases(&sb, tests)

	return strings.TrimRight(sb.String(), "\n")
}

func (c *TicketCommenter) writeAlignment(sb *strings.Builder, ra *models.RequirementsAlignment) {
	addressed := c.msg("label_no", nil)
	if ra.FullyAddressed {
		addressed = c.msg("label_yes", nil)
	}

	fmt.Fprintf(sb, "**%s:**\n", c.msg("label_requirements", nil))
	fmt.Fprintf(sb, "**%s:** %s\n", c.msg("label_fully_addressed", nil), addressed)
	if ra.AlignmentScore != "" {
		fmt.Fprintf(sb, "**%s:** %s\n", c.msg("label_alignment_score", nil), ra.AlignmentScore)
	}
	fmt.Fprintf(sb, "**%s:** %s\n", c.msg("label_missing_requirements", nil), c.list(ra.MissingRequirements))
	fmt.Fprintf(sb, "**%s:** %s\n\n", c.msg("label_additional_changes", nil), c.list(ra.AdditionalChanges))
}

func (c *TicketCommenter) writeTestCases(sb *strings.Builder, tests models.TestCaseSet) {
	fmt.Fprintf(sb, "**%s:**\n", c.msg("label_test_cases", nil))
	if len(tests.TestCases) == 0 {
		sb.WriteString(c.msg("no_test_cases", nil) + "\n")
		return
	}

	shown := tests.TestCases
	if len(shown) > MaxCommentTestCases {
		shown = shown[:MaxCommentTestCases]
	}
	for i, tc := range shown {
		fmt.Fprintf(sb, "**%d. %s** (%s: %s)\n", i+1, tc.Title, c.msg("label_priority", nil), tc.Priority)
		for j, step := range tc.Steps {
			fmt.Fprintf(sb, "%d. %s\n", j+1, step)
		}
		fmt.Fprintf(sb, "**%s:** %s\n\n", c.msg("label_expected_result", nil), tc.ExpectedResult)
	}

	total := len(tests.TestCases)
	sb.WriteString(c.trans.GetMessage("showing_test_cases", total, map[string]interface{}{
		"Shown": len(shown),
		"Count": total,
	}))
	sb.WriteString("\n")
}

func (c *TicketCommenter) list(items []string) string {
	if len(items) == 0 {
		return c.msg("label_none", nil)
	}
	return strings.Join(items, "; ")
}

func (c *TicketCommenter) msg(id string, data map[string]interface{}) string {
	return c.trans.GetMessage(id, 0, data)
}
