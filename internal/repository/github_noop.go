package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/compozy/autotag/internal/domain"
)

var ErrGithubTokenRequired = errors.New("github token is required for GitHub operations")

type githubNoopRepository struct {
	owner string
	repo  string
}

// NewGithubNoopRepository returns a repository whose every call fails with ErrGithubTokenRequired.
func NewGithubNoopRepository(owner, repo string) GithubRepository {
	return &githubNoopRepository{owner: owner, repo: repo}
}

func (r *githubNoopRepository) ListTags(_ context.Context, _, _ int) ([]domain.Tag, error) {
	return nil, r.operationError("list tags")
}

func (r *githubNoopRepository) CompareCommits(_ context.Context, _, _ string) ([]domain.Commit, error) {
	return nil, r.operationError("compare commits")
}

func (r *githubNoopRepository) CreateTag(_ context.Context, _, _, _ string) (*domain.TagObject, error) {
	return nil, r.operationError("create tag")
}

func (r *githubNoopRepository) CreateRef(_ context.Context, _, _ string) (*domain.Reference, error) {
	return nil, r.operationError("create reference")
}

func (r *githubNoopRepository) UpdateRef(_ context.Context, _, _ string, _ bool) (*domain.Reference, error) {
	return nil, r.operationError("update reference")
}

func (r *githubNoopRepository) operationError(action string) error {
	return fmt.Errorf("%w: unable to %s for %s/%s", ErrGithubTokenRequired, action, r.owner, r.repo)
}

// githubDryRunRepository reads through to the wrapped repository and fakes writes.
type githubDryRunRepository struct {
	inner GithubRepository
	owner string
	repo  string
}

// NewDryRunGithubRepository wraps inner so that no tag or reference is written.
func NewDryRunGithubRepository(inner GithubRepository, owner, repo string) GithubRepository {
	return &githubDryRunRepository{inner: inner, owner: owner, repo: repo}
}

func (r *githubDryRunRepository) ListTags(ctx context.Context, page, perPage int) ([]domain.Tag, error) {
	return r.inner.ListTags(ctx, page, perPage)
}

func (r *githubDryRunRepository) CompareCommits(ctx context.Context, base, head string) ([]domain.Commit, error) {
	return r.inner.CompareCommits(ctx, base, head)
}

func (r *githubDryRunRepository) CreateTag(_ context.Context, name, message, sha string) (*domain.TagObject, error) {
	return &domain.TagObject{
		Tag:     name,
		SHA:     sha,
		URL:     r.apiPath("git/tags/" + sha),
		Message: message,
	}, nil
}

func (r *githubDryRunRepository) CreateRef(_ context.Context, name, sha string) (*domain.Reference, error) {
	return &domain.Reference{
		Ref: domain.TagRef(name),
		URL: r.apiPath("git/" + domain.TagRef(name)),
		SHA: sha,
	}, nil
}

func (r *githubDryRunRepository) UpdateRef(ctx context.Context, name, sha string, _ bool) (*domain.Reference, error) {
	return r.CreateRef(ctx, name, sha)
}

func (r *githubDryRunRepository) apiPath(suffix string) string {
	return fmt.Sprintf("dry-run://repos/%s/%s/%s", r.owner, r.repo, suffix)
}
