package repository

import "context"

// GitRepository defines the local checkout operations.

type GitRepository interface {
	HeadCommit(ctx context.Context) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
}
