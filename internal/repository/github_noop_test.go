package repository

import (
	"context"
	"testing"

	"github.com/compozy/autotag/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingGithubRepository struct {
	GithubRepository
	writes int
}

func (r *recordingGithubRepository) ListTags(_ context.Context, _, _ int) ([]domain.Tag, error) {
	return []domain.Tag{{Name: "v1.0.0"}}, nil
}

func (r *recordingGithubRepository) CompareCommits(_ context.Context, _, _ string) ([]domain.Commit, error) {
	return []domain.Commit{{SHA: "abc"}}, nil
}

func (r *recordingGithubRepository) CreateTag(_ context.Context, _, _, _ string) (*domain.TagObject, error) {
	r.writes++
	return nil, nil
}

func TestGithubNoopRepository(t *testing.T) {
	repo := NewGithubNoopRepository("owner", "repo")
	ctx := context.Background()
	t.Run("Should fail every operation with the token error", func(t *testing.T) {
		_, err := repo.ListTags(ctx, 1, 100)
		assert.ErrorIs(t, err, ErrGithubTokenRequired)
		_, err = repo.CompareCommits(ctx, "a", "b")
		assert.ErrorIs(t, err, ErrGithubTokenRequired)
		_, err = repo.CreateTag(ctx, "v1", "m", "sha")
		assert.ErrorIs(t, err, ErrGithubTokenRequired)
		_, err = repo.CreateRef(ctx, "v1", "sha")
		assert.ErrorIs(t, err, ErrGithubTokenRequired)
		_, err = repo.UpdateRef(ctx, "v1", "sha", true)
		assert.ErrorIs(t, err, ErrGithubTokenRequired)
		assert.Contains(t, err.Error(), "owner/repo")
	})
}

func TestGithubDryRunRepository(t *testing.T) {
	ctx := context.Background()
	inner := &recordingGithubRepository{}
	repo := NewDryRunGithubRepository(inner, "owner", "repo")
	t.Run("Should delegate reads", func(t *testing.T) {
		tags, err := repo.ListTags(ctx, 1, 100)
		require.NoError(t, err)
		assert.Equal(t, "v1.0.0", tags[0].Name)
		commits, err := repo.CompareCommits(ctx, "v1.0.0", "master")
		require.NoError(t, err)
		assert.Len(t, commits, 1)
	})
	t.Run("Should synthesize writes without calling the inner repository", func(t *testing.T) {
		tag, err := repo.CreateTag(ctx, "v1.2.3", "msg", "deadbeef")
		require.NoError(t, err)
		assert.Equal(t, "v1.2.3", tag.Tag)
		assert.Equal(t, "deadbeef", tag.SHA)
		assert.Equal(t, "msg", tag.Message)
		ref, err := repo.CreateRef(ctx, "v1.2.3", tag.SHA)
		require.NoError(t, err)
		assert.Equal(t, "refs/tags/v1.2.3", ref.Ref)
		updated, err := repo.UpdateRef(ctx, "v1.2.3", tag.SHA, true)
		require.NoError(t, err)
		assert.Equal(t, ref, updated)
		assert.Equal(t, 0, inner.writes)
	})
}
