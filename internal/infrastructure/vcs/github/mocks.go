package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockRepoService struct {
	mock.Mock
}

func (m *MockRepoService) CompareCommitsRaw(ctx context.Context, owner, repo, base, head string, opts github.RawOptions) (string, *github.Response, error) {
	args := m.Called(ctx, owner, repo, base, head, opts)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*github.Response), args.Error(2)
}

type MockGitService struct {
	mock.Mock
}

func (m *MockGitService) GetTree(ctx context.Context, owner, repo, sha string, recursive bool) (*github.Tree, *github.Response, error) {
	args := m.Called(ctx, owner, repo, sha, recursive)
	var tree *github.Tree
	if t := args.Get(0); t != nil {
		tree = t.(*github.Tree)
	}
	if args.Get(1) == nil {
		return tree, nil, args.Error(2)
	}
	return tree, args.Get(1).(*github.Response), args.Error(2)
}
