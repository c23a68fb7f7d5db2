package models

import "strings"

type (
	// RiskScore is the overall risk level the model assigns to a change.
	RiskScore string

	// Priority is the priority of a generated manual test case.
	Priority string

	// Risk pairs the score with the model's reasoning.
	Risk struct {
		Score     RiskScore `json:"score"`
		Reasoning string    `json:"reasoning"`
	}

	// RequirementsAlignment compares the diff against the linked ticket.
	RequirementsAlignment struct {
		FullyAddressed      bool     `json:"fullyAddressed"`
		MissingRequirements []string `json:"missingRequirements"`
		AdditionalChanges   []string `json:"additionalChanges"`
		AlignmentScore      string   `json:"alignmentScore"`
	}

	// ImpactAnalysis is the parsed, fully defaulted answer of the impact prompt.
	ImpactAnalysis struct {
		Risk                  Risk                   `json:"risk"`
		KeyChanges            []string               `json:"keyChanges"`
		RequirementsAlignment *RequirementsAlignment `json:"requirementsAlignment,omitempty"`
		TechnicalDetails      map[string]string      `json:"technicalDetails"`
	}

	// TestCase is one manual test case drafted by the model.
	TestCase struct {
		Title          string   `json:"title"`
		Steps          []string `json:"steps"`
		ExpectedResult string   `json:"expectedResult"`
		Priority       Priority `json:"priority"`
	}

	// TestCaseSet is the parsed answer of the test case prompt. It may be empty.
	TestCaseSet struct {
		Summary   string     `json:"summary"`
		TestCases []TestCase `json:"testCases"`
	}
)

const (
	RiskCritical RiskScore = "CRITICAL"
	RiskHigh     RiskScore = "HIGH"
	RiskMedium   RiskScore = "MEDIUM"
	RiskLow      RiskScore = "LOW"

	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Technical detail categories, in display order.
const (
	CategoryAPI      = "API"
	CategoryDatabase = "Database"
	CategoryLogic    = "Logic"
	CategoryUI       = "UI"
	CategorySecurity = "Security"
)

// Defaults substituted for absent fields.
const (
	DefaultRiskScore       = RiskMedium
	DefaultPriority        = PriorityMedium
	DefaultReasoning       = "No details provided."
	DefaultTechnicalImpact = "No significant impact detected."
	DefaultTestCaseTitle   = "Untitled test case"
	DefaultExpectedResult  = "No details provided."
)

// TechnicalCategories lists the fixed categories of ImpactAnalysis.TechnicalDetails.
var TechnicalCategories = []string{CategoryAPI, CategoryDatabase, CategoryLogic, CategoryUI, CategorySecurity}

// ParseRiskScore normalises s. ok is false when s is not a known score.
func ParseRiskScore(s string) (RiskScore, bool) {
	switch RiskScore(strings.ToUpper(strings.TrimSpace(s))) {
	case RiskCritical:
		return RiskCritical, true
	case RiskHigh:
		return RiskHigh, true
	case RiskMedium:
		return RiskMedium, true
	case RiskLow:
		return RiskLow, true
	}
	return DefaultRiskScore, false
}

// ParsePriority normalises s. ok is false when s is not a known priority.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(strings.ToUpper(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityLow:
		return PriorityLow, true
	}
	return DefaultPriority, false
}
