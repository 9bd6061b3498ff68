package repository

import (
	"context"

	"github.com/compozy/autotag/internal/domain"
)

// GithubRepository defines the GitHub API operations used to tag a release.
type GithubRepository interface {
	// ListTags returns one page of tags, most recent first. An empty page ends the listing.
	ListTags(ctx context.Context, page, perPage int) ([]domain.Tag, error)
	// CompareCommits returns the commits reachable from head but not from base.
	CompareCommits(ctx context.Context, base, head string) ([]domain.Commit, error)
	// CreateTag creates an annotated tag object pointing at a commit.
	CreateTag(ctx context.Context, name, message, sha string) (*domain.TagObject, error)
	// CreateRef creates refs/tags/<name> pointing at sha.
	CreateRef(ctx context.Context, name, sha string) (*domain.Reference, error)
	// UpdateRef moves tags/<name> to sha.
	UpdateRef(ctx context.Context, name, sha string, force bool) (*domain.Reference, error)
}
