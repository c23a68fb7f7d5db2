package models

import (
	"encoding/json"
	"strings"

	domainErrors "github.com/Tomas-vilte/MateRisk/internal/domain/errors"
)

type (
	// TriggerEvent is the pull request lifecycle event that starts one pipeline run.
	TriggerEvent struct {
		Action    string
		IsMerged  bool
		BaseRef   string
		HeadRef   string
		PRNumber  int
		PRTitle   string
		PRBody    string
		RepoOwner string
		RepoName  string
	}

	webhookPayload struct {
		Action      string `json:"action"`
		PullRequest struct {
			Merged bool   `json:"merged"`
			Number int    `json:"number"`
			Title  string `json:"title"`
			Body   string `json:"body"`
			Base   struct {
				Ref  string `json:"ref"`
				Repo struct {
					Name     string `json:"name"`
					FullName string `json:"full_name"`
				} `json:"repo"`
			} `json:"base"`
			Head struct {
				Ref string `json:"ref"`
			} `json:"head"`
		} `json:"pull_request"`
		Repository struct {
			Name  string `json:"name"`
			Owner struct {
				Login string `json:"login"`
			} `json:"owner"`
		} `json:"repository"`
	}
)

// ParseTriggerEvent builds a TriggerEvent from a GitHub pull_request webhook payload.
// When the top-level repository object is missing, owner and name come from base.repo.full_name.
func ParseTriggerEvent(payload []byte) (TriggerEvent, error) {
	var p webhookPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return TriggerEvent{}, domainErrors.NewValidationError("webhook payload is not valid JSON", err)
	}

	owner := p.Repository.Owner.Login
	name := p.Repository.Name
	if owner == "" || name == "" {
		parts := strings.SplitN(p.PullRequest.Base.Repo.FullName, "/", 2)
		if len(parts) == 2 {
			if owner == "" {
				owner = parts[0]
			}
			if name == "" {
				name = parts[1]
			}
		}
	}
	if name == "" {
		name = p.PullRequest.Base.Repo.Name
	}

	return TriggerEvent{
		Action:    p.Action,
		IsMerged:  p.PullRequest.Merged,
		BaseRef:   p.PullRequest.Base.Ref,
		HeadRef:   p.PullRequest.Head.Ref,
		PRNumber:  p.PullRequest.Number,
		PRTitle:   p.PullRequest.Title,
		PRBody:    p.PullRequest.Body,
		RepoOwner: owner,
		RepoName:  name,
	}, nil
}

// FullName returns "owner/repo".
func (e TriggerEvent) FullName() string {
	return e.RepoOwner + "/" + e.RepoName
}
