package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/compozy/autotag/internal/config"
	"github.com/compozy/autotag/internal/domain"
	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

// githubRepository is the implementation of the GithubRepository interface.
type githubRepository struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGithubRepository creates a new GithubRepository with validation.
// apiURL selects a GitHub Enterprise endpoint when it differs from the public API.
func NewGithubRepository(token, owner, repo, apiURL string) (GithubRepository, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrGithubTokenRequired
	}
	if err := config.ValidateGitHubOwnerRepo(owner, repo); err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	client := github.NewClient(tc)
	if !isPublicAPI(apiURL) {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure github api url: %w", err)
		}
	}
	return newGithubRepositoryWithClient(client, owner, repo), nil
}

func newGithubRepositoryWithClient(client *github.Client, owner, repo string) *githubRepository {
	return &githubRepository{
		client: client,
		owner:  owner,
		repo:   repo,
	}
}

func isPublicAPI(apiURL string) bool {
	trimmed := strings.TrimRight(strings.TrimSpace(apiURL), "/")
	return trimmed == "" || trimmed == strings.TrimRight(config.DefaultGithubAPIURL, "/")
}

// ListTags returns one page of repository tags.
func (r *githubRepository) ListTags(ctx context.Context, page, perPage int) ([]domain.Tag, error) {
	tags, _, err := r.client.Repositories.ListTags(ctx, r.owner, r.repo, &github.ListOptions{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags (page %d): %w", page, err)
	}
	result := make([]domain.Tag, 0, len(tags))
	for _, tag := range tags {
		result = append(result, domain.Tag{
			Name: tag.GetName(),
			Commit: domain.TagCommit{
				SHA: tag.GetCommit().GetSHA(),
				URL: tag.GetCommit().GetURL(),
			},
		})
	}
	return result, nil
}

// CompareCommits returns the commits between base and head.
func (r *githubRepository) CompareCommits(ctx context.Context, base, head string) ([]domain.Commit, error) {
	comparison, _, err := r.client.Repositories.CompareCommits(ctx, r.owner, r.repo, base, head, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compare %s...%s: %w", base, head, err)
	}
	commits := make([]domain.Commit, 0, len(comparison.Commits))
	for _, c := range comparison.Commits {
		commits = append(commits, domain.Commit{
			SHA:         c.GetSHA(),
			Message:     c.GetCommit().GetMessage(),
			AuthorLogin: c.GetAuthor().GetLogin(),
		})
	}
	return commits, nil
}

// CreateTag creates an annotated tag object.
func (r *githubRepository) CreateTag(ctx context.Context, name, message, sha string) (*domain.TagObject, error) {
	tag, _, err := r.client.Git.CreateTag(ctx, r.owner, r.repo, &github.Tag{
		Tag:     github.Ptr(name),
		Message: github.Ptr(message),
		Object: &github.GitObject{
			SHA:  github.Ptr(sha),
			Type: github.Ptr(domain.TagObjectType),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tag %s: %w", name, err)
	}
	return &domain.TagObject{
		Tag:     tag.GetTag(),
		SHA:     tag.GetSHA(),
		URL:     tag.GetURL(),
		Message: tag.GetMessage(),
	}, nil
}

// CreateRef creates refs/tags/<name>.
func (r *githubRepository) CreateRef(ctx context.Context, name, sha string) (*domain.Reference, error) {
	ref, _, err := r.client.Git.CreateRef(ctx, r.owner, r.repo, &github.Reference{
		Ref:    github.Ptr(domain.TagRef(name)),
		Object: &github.GitObject{SHA: github.Ptr(sha)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create reference %s: %w", domain.TagRef(name), err)
	}
	return toReference(ref), nil
}

// UpdateRef moves tags/<name> to sha.
func (r *githubRepository) UpdateRef(
	ctx context.Context,
	name, sha string,
	force bool,
) (*domain.Reference, error) {
	ref, _, err := r.client.Git.UpdateRef(ctx, r.owner, r.repo, &github.Reference{
		Ref:    github.Ptr(domain.ShortTagRef(name)),
		Object: &github.GitObject{SHA: github.Ptr(sha)},
	}, force)
	if err != nil {
		return nil, fmt.Errorf("failed to update reference %s: %w", domain.ShortTagRef(name), err)
	}
	return toReference(ref), nil
}

func toReference(ref *github.Reference) *domain.Reference {
	return &domain.Reference{
		Ref: ref.GetRef(),
		URL: ref.GetURL(),
		SHA: ref.GetObject().GetSHA(),
	}
}

// IsTransient reports whether err is worth retrying: rate limiting or a 5xx answer.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return true
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return respErr.Response.StatusCode >= http.StatusInternalServerError
	}
	return false
}
