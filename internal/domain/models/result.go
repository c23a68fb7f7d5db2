package models

// PipelineStatus is the terminal state of one pipeline run.
type PipelineStatus string

const (
	StatusSkipped PipelineStatus = "skipped"
	StatusSuccess PipelineStatus = "success"
	StatusError   PipelineStatus = "error"
)

type (
	// PipelineResult is what the orchestrator hands back to its caller.
	PipelineResult struct {
		Status          PipelineStatus `json:"status"`
		Risk            RiskScore      `json:"risk,omitempty"`
		TestCaseCount   *int           `json:"testCaseCount,omitempty"`
		SyncedTestCases *int           `json:"syncedTestCases,omitempty"`
		TicketKey       string         `json:"ticketKey,omitempty"`
		CommentPosted   bool           `json:"commentPosted,omitempty"`
		Reason          string         `json:"reason,omitempty"`
		Error           string         `json:"error,omitempty"`
	}

	// CreatedTestCase is a test case accepted by the test-management service.
	CreatedTestCase struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
)

// Skipped builds the result of an event that did not pass the gate.
func Skipped(reason string) PipelineResult {
	return PipelineResult{Status: StatusSkipped, Reason: reason}
}

// Failed builds the result of a run aborted by err.
func Failed(err error) PipelineResult {
	return PipelineResult{Status: StatusError, Error: err.Error()}
}
