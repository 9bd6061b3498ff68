package usecase

import (
	"context"

	"github.com/compozy/autotag/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for GithubRepository
type mockGithubRepository struct {
	mock.Mock
}

func (m *mockGithubRepository) ListTags(ctx context.Context, page, perPage int) ([]domain.Tag, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *mockGithubRepository) CompareCommits(ctx context.Context, base, head string) ([]domain.Commit, error) {
	args := m.Called(ctx, base, head)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commit), args.Error(1)
}

func (m *mockGithubRepository) CreateTag(ctx context.Context, name, message, sha string) (*domain.TagObject, error) {
	args := m.Called(ctx, name, message, sha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TagObject), args.Error(1)
}

func (m *mockGithubRepository) CreateRef(ctx context.Context, name, sha string) (*domain.Reference, error) {
	args := m.Called(ctx, name, sha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reference), args.Error(1)
}

func (m *mockGithubRepository) UpdateRef(
	ctx context.Context,
	name, sha string,
	force bool,
) (*domain.Reference, error) {
	args := m.Called(ctx, name, sha, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reference), args.Error(1)
}

func makeTags(prefix string, n int) []domain.Tag {
	tags := make([]domain.Tag, n)
	for i := range tags {
		tags[i] = domain.Tag{Name: prefix + string(rune('a'+i%26)), Commit: domain.TagCommit{SHA: "sha"}}
	}
	return tags
}
