package jira

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	jiralib "github.com/andygrunwald/go-jira"

	"github.com/Tomas-vilte/MateRisk/internal/adf"
	domainErrors "github.com/Tomas-vilte/MateRisk/internal/domain/errors"
	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
	"github.com/Tomas-vilte/MateRisk/internal/logger"
	"github.com/Tomas-vilte/MateRisk/internal/regex"
)

var _ ports.TicketService = (*JiraService)(nil)

const maxErrorBody = 2048

// JiraService lee issues de Jira Cloud (REST v3) y publica comentarios en formato ADF.
type JiraService struct {
	baseURL   string
	email     string
	apiToken  string
	transport http.RoundTripper
}

type (
	issueResponse struct {
		Key    string      `json:"key"`
		Fields issueFields `json:"fields"`
	}

	issueFields struct {
		Summary     string      `json:"summary"`
		Description interface{} `json:"description"`
		Status      *namedField `json:"status"`
		Priority    *namedField `json:"priority"`
		IssueType   *namedField `json:"issuetype"`
	}

	namedField struct {
		Name string `json:"name"`
	}

	commentRequest struct {
		Body adf.Document `json:"body"`
	}
)

// NewJiraService crea el servicio. transport puede ser nil para usar http.DefaultTransport.
func NewJiraService(baseURL, email, apiToken string, transport http.RoundTripper) *JiraService {
	return &JiraService{
		baseURL:   strings.TrimSpace(baseURL),
		email:     email,
		apiToken:  apiToken,
		transport: transport,
	}
}

// GetTicket reads issueKey and returns its requirement context.
func (s *JiraService) GetTicket(ctx context.Context, issueKey string) (*models.TicketContext, error) {
	client, err := s.client()
	if err != nil {
		return nil, err
	}
	if err := validateKey(issueKey); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Debug("fetching ticket", "ticket_key", issueKey)

	req, err := client.NewRequestWithContext(ctx, http.MethodGet, "rest/api/3/issue/"+issueKey, nil)
	if err != nil {
		return nil, domainErrors.NewAppError(domainErrors.TypeTicket, "error building ticket request", err)
	}

	var issue issueResponse
	resp, err := client.Do(req, &issue)
	if err != nil {
		return nil, upstreamError(resp, err, "error fetching ticket", issueKey)
	}

	description := ExtractDescription(issue.Fields.Description)
	ticket := &models.TicketContext{
		Key:                issueKey,
		Title:              issue.Fields.Summary,
		Description:        description,
		AcceptanceCriteria: ExtractAcceptanceCriteria(description),
		Status:             issue.Fields.Status.name(),
		Priority:           issue.Fields.Priority.name(),
		IssueType:          issue.Fields.IssueType.name(),
	}

	log.Debug("ticket fetched",
		"ticket_key", issueKey,
		"has_acceptance_criteria", ticket.AcceptanceCriteria != "")
	return ticket, nil
}

// AddComment posts doc as a new comment on issueKey.
func (s *JiraService) AddComment(ctx context.Context, issueKey string, doc adf.Document) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	if err := validateKey(issueKey); err != nil {
		return err
	}

	req, err := client.NewRequestWithContext(ctx, http.MethodPost, "rest/api/3/issue/"+issueKey+"/comment", commentRequest{Body: doc})
	if err != nil {
		return domainErrors.NewAppError(domainErrors.TypeTicket, "error building comment request", err)
	}

	resp, err := client.Do(req, nil)
	if err != nil {
		return upstreamError(resp, err, "error posting comment", issueKey)
	}
	closeBody(resp)

	logger.Debug(ctx, "comment posted", "ticket_key", issueKey)
	return nil
}

// client parses the base URL and builds an authenticated go-jira client.
func (s *JiraService) client() (*jiralib.Client, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, domainErrors.ErrInvalidTicketURL.WithError(err).WithContext("url", s.baseURL)
	}
	if u.Host == "" {
		return nil, domainErrors.ErrInvalidTicketURL.WithContext("url", s.baseURL)
	}

	tp := jiralib.BasicAuthTransport{
		Username:  s.email,
		Password:  s.apiToken,
		Transport: s.transport,
	}

	client, err := jiralib.NewClient(tp.Client(), s.baseURL)
	if err != nil {
		return nil, domainErrors.ErrInvalidTicketURL.WithError(err).WithContext("url", s.baseURL)
	}
	return client, nil
}

func validateKey(issueKey string) error {
	if !regex.TicketKeyExact.MatchString(issueKey) {
		return domainErrors.ErrInvalidTicketKey.WithContext("key", issueKey)
	}
	return nil
}

func upstreamError(resp *jiralib.Response, err error, msg, issueKey string) error {
	if resp == nil || resp.Response == nil {
		return domainErrors.NewAppError(domainErrors.TypeTicket, msg, err).WithContext("key", issueKey)
	}
	defer closeBody(resp)

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode == http.StatusNotFound {
		return domainErrors.ErrTicketNotFound.WithError(err).
			WithContext("key", issueKey).
			WithContext("status_code", resp.StatusCode)
	}
	return domainErrors.NewUpstreamError(domainErrors.TypeTicket, msg, resp.StatusCode, strings.TrimSpace(string(body)), err).
		WithContext("key", issueKey)
}

func closeBody(resp *jiralib.Response) {
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}

func (f *namedField) name() string {
	if f == nil {
		return ""
	}
	return f.Name
}
