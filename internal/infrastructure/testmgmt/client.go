// Package testmgmt creates manual test cases in the test management service.
package testmgmt

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	domainErrors "github.com/Tomas-vilte/MateRisk/internal/domain/errors"
	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
	"github.com/Tomas-vilte/MateRisk/internal/infrastructure/httpclient"
)

var _ ports.TestCaseCreator = (*Client)(nil)

const (
	testCasesPath = "/api/v1/testcases"
	apiKeyHeader  = "X-API-Key"
)

// Priority codes of the test management service.
const (
	PriorityCodeHigh   = 1
	PriorityCodeMedium = 2
	PriorityCodeLow    = 3
)

type (
	Client struct {
		baseURL   string
		apiKey    string
		projectID string
		client    httpclient.HTTPClient
	}

	createRequest struct {
		ProjectID   string   `json:"projectId"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Steps       []string `json:"steps"`
		Priority    int      `json:"priority"`
	}

	createResponse struct {
		ID json.RawMessage `json:"id"`
	}
)

func NewClient(baseURL, apiKey, projectID string, client httpclient.HTTPClient) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		projectID: projectID,
		client:    client,
	}
}

// PriorityCode maps a generated priority to the service enumeration.
func PriorityCode(p models.Priority) int {
	switch p {
	case models.PriorityHigh:
		return PriorityCodeHigh
	case models.PriorityLow:
		return PriorityCodeLow
	default:
		return PriorityCodeMedium
	}
}

// CreateTestCase posts one test case. The expected result becomes the record description.
func (c *Client) CreateTestCase(ctx context.Context, tc models.TestCase) (models.CreatedTestCase, error) {
	steps := tc.Steps
	if steps == nil {
		steps = []string{}
	}
	payload, err := json.Marshal(createRequest{
		ProjectID:   c.projectID,
		Title:       tc.Title,
		Description: tc.ExpectedResult,
		Steps:       steps,
		Priority:    PriorityCode(tc.Priority),
	})
	if err != nil {
		return models.CreatedTestCase{}, domainErrors.NewAppError(domainErrors.TypeTestManagement, "error encoding test case", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+testCasesPath, bytes.NewReader(payload))
	if err != nil {
		return models.CreatedTestCase{}, domainErrors.NewAppError(domainErrors.TypeTestManagement, "error creating request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return models.CreatedTestCase{}, domainErrors.NewAppError(domainErrors.TypeTestManagement, "error making request", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.CreatedTestCase{}, domainErrors.NewUpstreamError(
			domainErrors.TypeTestManagement,
			"test case creation rejected",
			resp.StatusCode,
			strings.TrimSpace(httpclient.ReadErrorBody(resp)),
			nil,
		).WithContext("title", tc.Title)
	}

	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		// the record exists even when the answer cannot be read
		return models.CreatedTestCase{Title: tc.Title}, nil
	}
	return models.CreatedTestCase{ID: rawID(created.ID), Title: tc.Title}, nil
}

// rawID accepts string and numeric ids.
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
