package report

import (
	"strings"
	"testing"

	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompiler(t *testing.T, lang string) *Compiler {
	t.Helper()
	trans, err := i18n.NewTranslations(lang)
	require.NoError(t, err)
	return NewCompiler(trans)
}

func sampleEvent() models.TriggerEvent {
	return models.TriggerEvent{
		Action:    "opened",
		BaseRef:   "main",
		HeadRef:   "feature/login",
		PRNumber:  7,
		PRTitle:   "Add login",
		RepoOwner: "acme",
		RepoName:  "shop",
	}
}

func TestCompiler_Compile(t *testing.T) {
	t.Run("should fill every optional field with a default", func(t *testing.T) {
		c := newCompiler(t, "en")

		html, err := c.Compile(sampleEvent(), "", models.ImpactAnalysis{
			Risk: models.Risk{Score: models.RiskLow},
		}, models.TestCaseSet{})

		require.NoError(t, err)
		assert.NotContains(t, html, "<no value>")
		assert.NotContains(t, html, "null")
		assert.Contains(t, html, "Engineering risk report")
		assert.Contains(t, html, ">LOW<")
		assert.Contains(t, html, "No details provided.")
		assert.Contains(t, html, "No test cases generated.")
		assert.Equal(t, len(models.TechnicalCategories), strings.Count(html, "No significant impact detected."))
		assert.NotContains(t, html, "Requirements alignment")
	})

	t.Run("should render alignment and test cases", func(t *testing.T) {
		c := newCompiler(t, "en")

		html, err := c.Compile(sampleEvent(), "PROJ-1", models.ImpactAnalysis{
			Risk:       models.Risk{Score: models.RiskHigh, Reasoning: "Touches payments"},
			KeyChanges: []string{"New login handler"},
			RequirementsAlignment: &models.RequirementsAlignment{
				FullyAddressed:      false,
				MissingRequirements: []string{"Lockout after 3 attempts"},
				AlignmentScore:      "70%",
			},
			TechnicalDetails: map[string]string{models.CategorySecurity: "Password handling changed"},
		}, models.TestCaseSet{
			Summary: "Login coverage",
			TestCases: []models.TestCase{{
				Title:          "Valid login",
				Steps:          []string{"Open page", "Submit"},
				ExpectedResult: "Dashboard shown",
				Priority:       models.PriorityHigh,
			}},
		})

		require.NoError(t, err)
		assert.Contains(t, html, "PROJ-1")
		assert.Contains(t, html, "Touches payments")
		assert.Contains(t, html, "<li>New login handler</li>")
		assert.Contains(t, html, "Requirements alignment")
		assert.Contains(t, html, "Lockout after 3 attempts")
		assert.Contains(t, html, "70%")
		assert.Contains(t, html, "Password handling changed")
		assert.Contains(t, html, "1. Valid login")
		assert.Contains(t, html, "<li>Submit</li>")
		assert.Contains(t, html, "1 test case generated")
		assert.NotContains(t, html, "No test cases generated.")
	})

	t.Run("should escape model output", func(t *testing.T) {
		c := newCompiler(t, "en")

		html, err := c.Compile(sampleEvent(), "", models.ImpactAnalysis{
			Risk: models.Risk{Score: models.RiskMedium, Reasoning: "<script>alert(1)</script>"},
		}, models.TestCaseSet{})

		require.NoError(t, err)
		assert.NotContains(t, html, "<script>alert(1)</script>")
		assert.Contains(t, html, "&lt;script&gt;")
	})

	t.Run("should render in spanish", func(t *testing.T) {
		c := newCompiler(t, "es")

		html, err := c.Compile(sampleEvent(), "", models.ImpactAnalysis{}, models.TestCaseSet{})

		require.NoError(t, err)
		assert.Contains(t, html, `lang="es"`)
		assert.Contains(t, html, "No se generaron casos de prueba.")
		assert.Contains(t, html, ">MEDIUM<")
	})
}

func TestCompiler_Subject(t *testing.T) {
	c := newCompiler(t, "en")

	subject := c.Subject(sampleEvent(), models.ImpactAnalysis{Risk: models.Risk{Score: models.RiskLow}})

	assert.Equal(t, "[LOW] Risk report for acme/shop #7: Add login", subject)
}
