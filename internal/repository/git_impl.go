package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrDetachedHead is returned by CurrentBranch when HEAD is not a branch.
var ErrDetachedHead = errors.New("HEAD is detached")

// gitRepository is the implementation of the GitRepository interface.

type gitRepository struct {
	repo *git.Repository
}

// NewGitRepository opens the checkout containing dir.
func NewGitRepository(dir string) (GitRepository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return &gitRepository{repo: repo}, nil
}

// HeadCommit returns the SHA of the current HEAD commit.
func (r *gitRepository) HeadCommit(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// CurrentBranch returns the short name of the checked out branch.
func (r *gitRepository) CurrentBranch(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if head.Name() == plumbing.HEAD || !head.Name().IsBranch() {
		return "", ErrDetachedHead
	}
	return head.Name().Short(), nil
}

// unavailableGitRepository stands in when the workspace is not a checkout.
type unavailableGitRepository struct {
	err error
}

// NewUnavailableGitRepository returns a GitRepository whose operations fail with cause.
func NewUnavailableGitRepository(cause error) GitRepository {
	return &unavailableGitRepository{err: cause}
}

func (r *unavailableGitRepository) HeadCommit(_ context.Context) (string, error) {
	return "", r.err
}

func (r *unavailableGitRepository) CurrentBranch(_ context.Context) (string, error) {
	return "", r.err
}
