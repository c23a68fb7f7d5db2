package models

// TicketContext holds the requirement context of the ticket linked to a pull request.
type TicketContext struct {
	Key                string `json:"key"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	AcceptanceCriteria string `json:"acceptance_criteria"`
	Status             string `json:"status"`
	Priority           string `json:"priority"`
	IssueType          string `json:"issue_type"`
}
