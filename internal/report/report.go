// Package report renders the HTML risk report sent by email.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/i18n"
)

//go:embed templates/report.html
var templateFS embed.FS

var reportTemplate = template.Must(
	template.New("report.html").
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		ParseFS(templateFS, "templates/report.html"),
)

var riskColors = map[models.RiskScore]string{
	models.RiskCritical: "#8b0000",
	models.RiskHigh:     "#cf222e",
	models.RiskMedium:   "#bf8700",
	models.RiskLow:      "#1a7f37",
}

type (
	labels struct {
		Risk, Reasoning, KeyChanges, Requirements, FullyAddressed, AlignmentScore string
		MissingRequirements, AdditionalChanges, TechnicalDetails, TestCases       string
		ExpectedResult, Priority, Summary, Ticket, Branches                       string
	}

	alignmentView struct {
		FullyAddressed string
		Score          string
		Missing        []string
		Additional     []string
	}

	detailView struct {
		Category string
		Detail   string
	}

	testCaseView struct {
		Title          string
		Steps          []string
		ExpectedResult string
		Priority       models.Priority
	}

	reportView struct {
		Lang      string
		Title     string
		PRLine    string
		BaseRef   string
		HeadRef   string
		TicketKey string
		Labels    labels

		Risk      models.RiskScore
		RiskColor template.CSS
		Reasoning string

		KeyChanges   []string
		NoKeyChanges string

		Alignment        *alignmentView
		TechnicalDetails []detailView

		Summary       string
		TestCases     []testCaseView
		TestCaseCount string
		NoTestCases   string

		Footer string
	}
)

// Compiler renders reports in the language of its translations.
type Compiler struct {
	trans *i18n.Translations
}

func NewCompiler(trans *i18n.Translations) *Compiler {
	return &Compiler{trans: trans}
}

// Compile renders the report. Every optional field gets a default text, so the
// output never shows an empty placeholder.
func (c *Compiler) Compile(event models.TriggerEvent, ticketKey string, analysis models.ImpactAnalysis, tests models.TestCaseSet) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, c.view(event, ticketKey, analysis, tests)); err != nil {
		return "", fmt.Errorf("error rendering report: %w", err)
	}
	return buf.String(), nil
}

// Subject builds the mail subject line.
func (c *Compiler) Subject(event models.TriggerEvent, analysis models.ImpactAnalysis) string {
	return c.trans.GetMessage("email_subject", 0, map[string]interface{}{
		"Risk":   riskOrDefault(analysis.Risk.Score),
		"Repo":   event.FullName(),
		"Number": event.PRNumber,
		"Title":  event.PRTitle,
	})
}

func (c *Compiler) view(event models.TriggerEvent, ticketKey string, analysis models.ImpactAnalysis, tests models.TestCaseSet) reportView {
	risk := riskOrDefault(analysis.Risk.Score)

	v := reportView{
		Lang:  c.trans.Language(),
		Title: c.msg("report_title", nil),
		PRLine: c.msg("comment_pr_line", map[string]interface{}{
			"Number": event.PRNumber,
			"Title":  event.PRTitle,
			"Repo":   event.FullName(),
		}),
		BaseRef:   event.BaseRef,
		HeadRef:   event.HeadRef,
		TicketKey: ticketKey,
		Labels:    c.labels(),

		Risk:      risk,
		RiskColor: template.CSS(riskColors[risk]),
		Reasoning: orDefault(analysis.Risk.Reasoning, models.DefaultReasoning),

		KeyChanges:   nonEmpty(analysis.KeyChanges),
		NoKeyChanges: c.msg("no_key_changes", nil),

		Summary:     strings.TrimSpace(tests.Summary),
		NoTestCases: c.msg("no_test_cases", nil),
		Footer:      c.msg("report_footer", nil),
	}

	if ra := analysis.RequirementsAlignment; ra != nil {
		addressed := c.msg("label_no", nil)
		if ra.FullyAddressed {
			addressed = c.msg("label_yes", nil)
		}
		none := []string{c.msg("label_none", nil)}
		v.Alignment = &alignmentView{
			FullyAddressed: addressed,
			Score:          orDefault(ra.AlignmentScore, models.DefaultReasoning),
			Missing:        orDefaultList(nonEmpty(ra.MissingRequirements), none),
			Additional:     orDefaultList(nonEmpty(ra.AdditionalChanges), none),
		}
	}

	for _, category := range models.TechnicalCategories {
		v.TechnicalDetails = append(v.TechnicalDetails, detailView{
			Category: category,
			Detail:   orDefault(analysis.TechnicalDetails[category], models.DefaultTechnicalImpact),
		})
	}

	for _, tc := range tests.TestCases {
		priority := tc.Priority
		if priority == "" {
			priority = models.DefaultPriority
		}
		v.TestCases = append(v.TestCases, testCaseView{
			Title:          orDefault(tc.Title, models.DefaultTestCaseTitle),
			Steps:          nonEmpty(tc.Steps),
			ExpectedResult: orDefault(tc.ExpectedResult, models.DefaultExpectedResult),
			Priority:       priority,
		})
	}
	if n := len(v.TestCases); n > 0 {
		v.TestCaseCount = c.trans.GetMessage("test_case_count", n, map[string]interface{}{"Count": n})
	}

	return v
}

func (c *Compiler) labels() labels {
	return labels{
		Risk:                c.msg("label_risk", nil),
		Reasoning:           c.msg("label_reasoning", nil),
		KeyChanges:          c.msg("label_key_changes", nil),
		Requirements:        c.msg("label_requirements", nil),
		FullyAddressed:      c.msg("label_fully_addressed", nil),
		AlignmentScore:      c.msg("label_alignment_score", nil),
		MissingRequirements: c.msg("label_missing_requirements", nil),
		AdditionalChanges:   c.msg("label_additional_changes", nil),
		TechnicalDetails:    c.msg("label_technical_details", nil),
		TestCases:           c.msg("label_test_cases", nil),
		ExpectedResult:      c.msg("label_expected_result", nil),
		Priority:            c.msg("label_priority", nil),
		Summary:             c.msg("label_summary", nil),
		Ticket:              c.msg("label_ticket", nil),
		Branches:            c.msg("label_branches", nil),
	}
}

func (c *Compiler) msg(id string, data map[string]interface{}) string {
	return c.trans.GetMessage(id, 0, data)
}

func riskOrDefault(score models.RiskScore) models.RiskScore {
	if score == "" {
		return models.DefaultRiskScore
	}
	return score
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func orDefaultList(items, def []string) []string {
	if len(items) == 0 {
		return def
	}
	return items
}

// nonEmpty drops blank entries.
func nonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}
