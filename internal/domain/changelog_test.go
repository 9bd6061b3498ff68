package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderCommit(t *testing.T) {
	commit := Commit{SHA: "abc123", Message: "fix: bug\ndetails", AuthorLogin: "bob"}

	t.Run("Should render the default template", func(t *testing.T) {
		out := RenderCommit(DefaultChangelogTemplate, commit)
		assert.Equal(t, "**1) fix: bug\ndetails** bob\n(SHA: abc123)\n", out)
	})
	t.Run("Should render only the first line for messageHeadline", func(t *testing.T) {
		out := RenderCommit("- {{messageHeadline}} ({{sha}})", commit)
		assert.Equal(t, "- fix: bug (abc123)", out)
	})
	t.Run("Should render a missing author as empty string", func(t *testing.T) {
		out := RenderCommit("{{author}}|{{sha}}", Commit{SHA: "def456", Message: "chore"})
		assert.Equal(t, "|def456", out)
	})
	t.Run("Should replace every occurrence of a token", func(t *testing.T) {
		out := RenderCommit("{{sha}} {{sha}}", commit)
		assert.Equal(t, "abc123 abc123", out)
	})
	t.Run("Should leave unknown placeholders untouched", func(t *testing.T) {
		out := RenderCommit("{{date}} {{ sha }} {{sha}}", commit)
		assert.Equal(t, "{{date}} {{ sha }} abc123", out)
	})
	t.Run("Should not rescan substituted values", func(t *testing.T) {
		out := RenderCommit("{{message}}", Commit{Message: "mentions {{sha}}", SHA: "abc"})
		assert.Equal(t, "mentions {{sha}}", out)
	})
	t.Run("Should handle a dangling brace pair at the end", func(t *testing.T) {
		out := RenderCommit("end {{", commit)
		assert.Equal(t, "end {{", out)
	})
}

func TestRenderChangelog(t *testing.T) {
	commits := []Commit{
		{SHA: "a1", Message: "feat: one", AuthorLogin: "ann"},
		{SHA: "b2", Message: "fix: two\n\nbody", AuthorLogin: ""},
	}

	t.Run("Should join rendered blocks with newlines", func(t *testing.T) {
		out := RenderChangelog("{{messageHeadline}} by {{author}}", commits)
		assert.Equal(t, "feat: one by ann\nfix: two by ", out)
	})
	t.Run("Should fall back to the default template", func(t *testing.T) {
		out := RenderChangelog("", commits[:1])
		assert.Equal(t, "**1) feat: one** ann\n(SHA: a1)\n", out)
	})
	t.Run("Should render nothing for an empty range", func(t *testing.T) {
		assert.Equal(t, "", RenderChangelog("", nil))
	})
}
