package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/compozy/autotag/internal/orchestrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSHA = "0123456789abcdef0123456789abcdef01234567"

func setupEnv(t *testing.T, apiURL string) (string, string) {
	t.Helper()
	for _, key := range []string{
		"INPUT_GITHUB_TOKEN", "GITHUB_TOKEN", "AUTOTAG_GITHUB_TOKEN",
		"INPUT_PACKAGE_ROOT", "INPUT_OVERWRITE", "INPUT_TAG_PREFIX", "INPUT_TAG_SUFFIX",
		"INPUT_TAG_MESSAGE", "INPUT_CHANGELOG_STRUCTURE", "INPUT_CHANGELOG_HEAD", "INPUT_DRY_RUN",
		"GITHUB_REPOSITORY_OWNER", "GITHUB_ACTIONS", "RUNNER_DEBUG", "AUTOTAG_DEBUG",
	} {
		t.Setenv(key, "")
	}
	workspace := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workspace, "package.json"), []byte(`{"version":"1.2.3"}`), 0644))
	outputFile := filepath.Join(t.TempDir(), "github_output")
	t.Setenv("GITHUB_WORKSPACE", workspace)
	t.Setenv("GITHUB_SHA", testSHA)
	t.Setenv("GITHUB_REPOSITORY", "owner/repo")
	t.Setenv("GITHUB_API_URL", apiURL)
	t.Setenv("GITHUB_OUTPUT", outputFile)
	t.Setenv("AUTOTAG_RETRY_COUNT", "0")
	return workspace, outputFile
}

func newTestServer(t *testing.T, calls *[]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/owner/repo/tags", func(w http.ResponseWriter, r *http.Request) {
		*calls = append(*calls, "list "+r.URL.Query().Get("page"))
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/api/v3/repos/owner/repo/git/tags", func(w http.ResponseWriter, r *http.Request) {
		*calls = append(*calls, "tag")
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, testSHA, payload["object"])
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"tag":%q,"sha":"tagsha","url":"https://ghe/tags/tagsha","message":%q}`,
			payload["tag"], payload["message"])
	})
	mux.HandleFunc("/api/v3/repos/owner/repo/git/refs", func(w http.ResponseWriter, _ *http.Request) {
		*calls = append(*calls, "ref")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"ref":"refs/tags/v1.2.3","url":"https://ghe/refs/tags/v1.2.3","object":{"sha":"tagsha"}}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRootCmd(t *testing.T) {
	t.Run("Should tag the manifest version and write outputs", func(t *testing.T) {
		var calls []string
		server := newTestServer(t, &calls)
		_, outputFile := setupEnv(t, server.URL)
		t.Setenv("GITHUB_TOKEN", "token")
		cmd := newRootCmd()
		var stdout, stderr bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{})
		require.NoError(t, cmd.ExecuteContext(context.Background()))
		assert.Equal(t, []string{"list 1", "tag", "ref"}, calls)
		content, err := os.ReadFile(outputFile)
		require.NoError(t, err)
		out := string(content)
		assert.Contains(t, out, "version<<ghadelimiter_")
		assert.Contains(t, out, "\n1.2.3\n")
		assert.Contains(t, out, "\nv1.2.3\n")
		assert.Contains(t, out, "\nrefs/tags/v1.2.3\n")
		assert.Contains(t, out, "\nVersion 1.2.3\n")
	})
	t.Run("Should skip writes with the dry-run flag", func(t *testing.T) {
		var calls []string
		server := newTestServer(t, &calls)
		_, outputFile := setupEnv(t, server.URL)
		t.Setenv("GITHUB_TOKEN", "token")
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--dry-run", "--tag-prefix", "release-"})
		require.NoError(t, cmd.ExecuteContext(context.Background()))
		assert.Equal(t, []string{"list 1"}, calls)
		content, err := os.ReadFile(outputFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "\nrelease-1.2.3\n")
	})
	t.Run("Should fail without a token", func(t *testing.T) {
		var calls []string
		server := newTestServer(t, &calls)
		setupEnv(t, server.URL)
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{})
		err := cmd.ExecuteContext(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, orchestrator.ErrRunFailed)
		assert.Empty(t, calls)
	})
	t.Run("Should print outputs to stdout without an output file", func(t *testing.T) {
		var calls []string
		server := newTestServer(t, &calls)
		setupEnv(t, server.URL)
		t.Setenv("GITHUB_OUTPUT", "")
		t.Setenv("GITHUB_TOKEN", "token")
		cmd := newRootCmd()
		var stdout bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--tag-message", "hello"})
		require.NoError(t, cmd.ExecuteContext(context.Background()))
		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		assert.Contains(t, lines, "version=1.2.3")
		assert.Contains(t, lines, "tagname=v1.2.3")
		assert.Contains(t, lines, "tagmessage=hello")
	})
}

func TestVersionCmd(t *testing.T) {
	t.Run("Should print build information", func(t *testing.T) {
		cmd := newVersionCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{})
		require.NoError(t, cmd.Execute())
		assert.True(t, strings.HasPrefix(out.String(), "autotag "))
		assert.Contains(t, out.String(), "Built:\t")
	})
}

func TestNewTagCmd(t *testing.T) {
	t.Run("Should run the tag workflow from the sub-command", func(t *testing.T) {
		var calls []string
		server := newTestServer(t, &calls)
		setupEnv(t, server.URL)
		t.Setenv("GITHUB_TOKEN", "token")
		root := newRootCmd()
		root.AddCommand(NewTagCmd())
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs([]string{"tag", "--tag-message", "hello"})
		require.NoError(t, root.ExecuteContext(context.Background()))
		assert.Equal(t, []string{"list 1", "tag", "ref"}, calls)
	})
}
