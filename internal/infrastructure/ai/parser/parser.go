// Package parser turns raw language model answers into fully defaulted domain values.
package parser

import (
	"context"
	"encoding/json"
	"strings"

	domainErrors "github.com/Tomas-vilte/MateRisk/internal/domain/errors"
	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/logger"
	"github.com/xeipuuv/gojsonschema"
)

type (
	rawImpactAnalysis struct {
		Risk *struct {
			Score     *string `json:"score"`
			Reasoning *string `json:"reasoning"`
		} `json:"risk"`
		KeyChanges            []string `json:"keyChanges"`
		RequirementsAlignment *struct {
			FullyAddressed      *bool    `json:"fullyAddressed"`
			MissingRequirements []string `json:"missingRequirements"`
			AdditionalChanges   []string `json:"additionalChanges"`
			AlignmentScore      *string  `json:"alignmentScore"`
		} `json:"requirementsAlignment"`
		TechnicalDetails map[string]*string `json:"technicalDetails"`
	}

	rawTestCaseSet struct {
		Summary   *string `json:"summary"`
		TestCases []struct {
			Title          *string  `json:"title"`
			Steps          []string `json:"steps"`
			ExpectedResult *string  `json:"expectedResult"`
			Priority       *string  `json:"priority"`
		} `json:"testCases"`
	}
)

// ParseImpactAnalysis validates raw against the impact analysis contract and fills
// every absent field with its default.
func ParseImpactAnalysis(ctx context.Context, raw string) (models.ImpactAnalysis, error) {
	var r rawImpactAnalysis
	if err := decode(impactAnalysisSchema, raw, "impact analysis", &r); err != nil {
		return models.ImpactAnalysis{}, err
	}

	analysis := models.ImpactAnalysis{
		Risk: models.Risk{
			Score:     models.DefaultRiskScore,
			Reasoning: models.DefaultReasoning,
		},
		KeyChanges:       nonNil(r.KeyChanges),
		TechnicalDetails: technicalDetails(r.TechnicalDetails),
	}

	if r.Risk != nil {
		if r.Risk.Score != nil {
			score, ok := models.ParseRiskScore(*r.Risk.Score)
			if !ok {
				logger.Warn(ctx, "unknown risk score, using default",
					"value", *r.Risk.Score,
					"default", models.DefaultRiskScore)
			}
			analysis.Risk.Score = score
		}
		if s := value(r.Risk.Reasoning); s != "" {
			analysis.Risk.Reasoning = s
		}
	}

	if ra := r.RequirementsAlignment; ra != nil {
		analysis.RequirementsAlignment = &models.RequirementsAlignment{
			FullyAddressed:      ra.FullyAddressed != nil && *ra.FullyAddressed,
			MissingRequirements: nonNil(ra.MissingRequirements),
			AdditionalChanges:   nonNil(ra.AdditionalChanges),
			AlignmentScore:      value(ra.AlignmentScore),
		}
	}

	return analysis, nil
}

// ParseTestCaseSet validates raw against the test case contract and fills every
// absent field with its default. An answer without test cases is valid.
func ParseTestCaseSet(ctx context.Context, raw string) (models.TestCaseSet, error) {
	var r rawTestCaseSet
	if err := decode(testCaseSetSchema, raw, "test case set", &r); err != nil {
		return models.TestCaseSet{}, err
	}

	set := models.TestCaseSet{
		Summary:   value(r.Summary),
		TestCases: make([]models.TestCase, 0, len(r.TestCases)),
	}

	for i, tc := range r.TestCases {
		testCase := models.TestCase{
			Title:          value(tc.Title),
			Steps:          nonNil(tc.Steps),
			ExpectedResult: value(tc.ExpectedResult),
			Priority:       models.DefaultPriority,
		}
		if testCase.Title == "" {
			testCase.Title = models.DefaultTestCaseTitle
		}
		if testCase.ExpectedResult == "" {
			testCase.ExpectedResult = models.DefaultExpectedResult
		}
		if tc.Priority != nil {
			priority, ok := models.ParsePriority(*tc.Priority)
			if !ok {
				logger.Warn(ctx, "unknown test case priority, using default",
					"index", i,
					"value", *tc.Priority,
					"default", models.DefaultPriority)
			}
			testCase.Priority = priority
		}
		set.TestCases = append(set.TestCases, testCase)
	}

	return set, nil
}

// decode extracts the JSON object from raw, validates it and unmarshals it into v.
func decode(schema *gojsonschema.Schema, raw, what string, v interface{}) error {
	doc := ExtractJSON(raw)
	if doc == "" || !json.Valid([]byte(doc)) {
		return domainErrors.NewParseError(what+" is not valid JSON", nil, nil).
			WithSuggestion(domainErrors.ErrInvalidAIOutput.Suggestion)
	}

	details, err := validate(schema, doc)
	if err != nil {
		return domainErrors.NewParseError(what+" could not be validated", nil, err)
	}
	if len(details) > 0 {
		return domainErrors.NewParseError(what+" does not match the expected shape: "+strings.Join(details, "; "), details, nil)
	}

	if err := json.Unmarshal([]byte(doc), v); err != nil {
		return domainErrors.NewParseError(what+" could not be decoded", nil, err)
	}
	return nil
}

// technicalDetails returns every fixed category, matched case-insensitively. Unknown keys are dropped.
func technicalDetails(in map[string]*string) map[string]string {
	byKey := make(map[string]string, len(in))
	for k, v := range in {
		if s := value(v); s != "" {
			byKey[strings.ToLower(strings.TrimSpace(k))] = s
		}
	}

	out := make(map[string]string, len(models.TechnicalCategories))
	for _, category := range models.TechnicalCategories {
		if s, ok := byKey[strings.ToLower(category)]; ok {
			out[category] = s
			continue
		}
		out[category] = models.DefaultTechnicalImpact
	}
	return out
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
