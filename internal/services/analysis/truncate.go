package analysis

// Limits applied to prompt inputs, counted in characters.
const (
	MaxTreeChars               = 4000
	MaxDiffChars               = 8000
	MaxDescriptionChars        = 3000
	MaxAcceptanceCriteriaChars = 2000
)

// Token budgets requested from the model.
const (
	ImpactTokens           = 1500
	ImpactWithTicketTokens = 2500
	TestCaseTokens         = 3000
)

// Truncate keeps the first limit characters of s. It never splits a UTF-8 sequence.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
