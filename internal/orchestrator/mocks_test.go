package orchestrator

import (
	"context"
	"sync"

	"github.com/compozy/autotag/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for GitRepository
type mockGitRepository struct {
	mock.Mock
}

func (m *mockGitRepository) HeadCommit(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockGitRepository) CurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

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

// recordingOutputs is an OutputSink keeping outputs in memory.
type recordingOutputs struct {
	mu      sync.Mutex
	values  map[string]string
	failOn  string
	failErr error
}

func newRecordingOutputs() *recordingOutputs {
	return &recordingOutputs{values: make(map[string]string)}
}

func (r *recordingOutputs) SetOutput(_ context.Context, name, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name == r.failOn && r.failErr != nil {
		failErr := r.failErr
		r.failErr = nil
		return failErr
	}
	r.values[name] = value
	return nil
}

func (r *recordingOutputs) get(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.values[name]
	return v, ok
}
