package github

import (
	"context"
	"errors"
	"net/http"

	"github.com/Tomas-vilte/MateRisk/internal/diff"
	domainErrors "github.com/Tomas-vilte/MateRisk/internal/domain/errors"
	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
	"github.com/Tomas-vilte/MateRisk/internal/logger"
	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

var _ ports.SourceFetcher = (*GitHubClient)(nil)

const (
	treeTypeBlob = "blob"
	treeTypeTree = "tree"
)

type RepositoriesService interface {
	CompareCommitsRaw(ctx context.Context, owner, repo, base, head string, opts github.RawOptions) (string, *github.Response, error)
}

type GitService interface {
	GetTree(ctx context.Context, owner, repo, sha string, recursive bool) (*github.Tree, *github.Response, error)
}

type GitHubClient struct {
	repoService RepositoriesService
	gitService  GitService
	selfDir     string
}

// NewGitHubClient authenticates every request with token as a bearer token.
// Tree entries under selfDir are never returned.
func NewGitHubClient(token, selfDir string) *GitHubClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return NewGitHubClientWithServices(client.Repositories, client.Git, selfDir)
}

func NewGitHubClientWithServices(repoService RepositoriesService, gitService GitService, selfDir string) *GitHubClient {
	return &GitHubClient{
		repoService: repoService,
		gitService:  gitService,
		selfDir:     selfDir,
	}
}

// FetchDiff returns the unified diff between base and head.
func (ghc *GitHubClient) FetchDiff(ctx context.Context, owner, repo, base, head string) (string, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching diff", "owner", owner, "repo", repo, "base", base, "head", head)

	raw, resp, err := ghc.repoService.CompareCommitsRaw(ctx, owner, repo, base, head, github.RawOptions{Type: github.Diff})
	if err != nil {
		status, body := responseDetails(resp, err)
		log.Error("diff fetch failed", "status", status, "error", err)
		return "", domainErrors.NewUpstreamError(domainErrors.TypeVCS, domainErrors.ErrFetchDiff.Message, status, body, err).
			WithSuggestion(domainErrors.ErrFetchDiff.Suggestion)
	}

	log.Debug("diff fetched", "diff_size", len(raw))
	return raw, nil
}

// FetchTree returns the recursive tree of branch without self entries, capped at
// models.MaxTreeEntries. A failed request is logged and yields a nil tree.
func (ghc *GitHubClient) FetchTree(ctx context.Context, owner, repo, branch string) (*models.ProjectTree, error) {
	log := logger.FromContext(ctx)

	tree, resp, err := ghc.gitService.GetTree(ctx, owner, repo, branch, true)
	if err != nil {
		status, _ := responseDetails(resp, err)
		log.Warn("tree fetch failed, continuing without tree",
			"owner", owner,
			"repo", repo,
			"branch", branch,
			"status", status,
			"error", err)
		return nil, nil
	}

	entries := make([]models.TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		switch e.GetType() {
		case treeTypeBlob:
			entries = append(entries, models.TreeEntry{Path: e.GetPath(), Kind: models.KindFile})
		case treeTypeTree:
			entries = append(entries, models.TreeEntry{Path: e.GetPath(), Kind: models.KindDirectory})
		}
	}

	if tree.GetTruncated() {
		log.Debug("github truncated the tree", "branch", branch)
	}

	result := diff.FilterTree(entries, ghc.selfDir)
	log.Debug("tree fetched", "count", result.Len())
	return result, nil
}

func responseDetails(resp *github.Response, err error) (int, string) {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		status := 0
		if ghErr.Response != nil {
			status = ghErr.Response.StatusCode
		}
		return status, ghErr.Message
	}
	if resp != nil && resp.Response != nil {
		return resp.StatusCode, ""
	}
	return 0, ""
}
