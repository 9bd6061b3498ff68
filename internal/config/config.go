package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/compozy/autotag/internal/domain"
	"github.com/go-git/go-git/v5"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrMissingToken is returned when no GitHub token could be resolved.
var ErrMissingToken = errors.New("invalid or missing github token")

const (
	// DefaultTagPrefix is used when the tag_prefix input is blank.
	DefaultTagPrefix = "v"
	// DefaultChangelogHead is the ref commits are compared against.
	DefaultChangelogHead = "master"
	// DefaultGithubAPIURL is the public GitHub REST endpoint.
	DefaultGithubAPIURL = "https://api.github.com/"
	// DefaultRetryCount bounds retries of transient read failures.
	DefaultRetryCount = 3
)

type Config struct {
	GithubToken        string `mapstructure:"github_token"`
	GithubOwner        string `mapstructure:"github_owner"`
	GithubRepo         string `mapstructure:"github_repo"`
	GithubAPIURL       string `mapstructure:"github_api_url"`
	Repository         string `mapstructure:"repository"`
	Workspace          string `mapstructure:"workspace"`
	SHA                string `mapstructure:"sha"`
	PackageRoot        string `mapstructure:"package_root"`
	Overwrite          string `mapstructure:"overwrite"`
	TagPrefix          string `mapstructure:"tag_prefix"`
	TagSuffix          string `mapstructure:"tag_suffix"`
	TagMessage         string `mapstructure:"tag_message"`
	ChangelogStructure string `mapstructure:"changelog_structure"`
	ChangelogHead      string `mapstructure:"changelog_head"`
	OutputFile         string `mapstructure:"output_file"`
	DryRun             bool   `mapstructure:"dry_run"`
	Debug              bool   `mapstructure:"debug"`
	RetryCount         uint64 `mapstructure:"retry_count"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		GithubAPIURL:  DefaultGithubAPIURL,
		Workspace:     ".",
		TagPrefix:     DefaultTagPrefix,
		ChangelogHead: DefaultChangelogHead,
		RetryCount:    DefaultRetryCount,
	}
}

// OverwriteEnabled reports whether the overwrite input is "true", ignoring case.
func (c *Config) OverwriteEnabled() bool {
	return strings.EqualFold(c.Overwrite, "true")
}

// ChangelogTemplate returns the configured changelog structure or the built-in one.
func (c *Config) ChangelogTemplate() string {
	if c.ChangelogStructure == "" {
		return domain.DefaultChangelogTemplate
	}
	return c.ChangelogStructure
}

// ManifestPath returns <workspace>/<package_root>/package.json.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.Workspace, c.PackageRoot, "package.json")
}

// Validate validates the configuration. Owner and repo are checked by
// ValidateForGitHubOperations once the run needs them.
func (c *Config) Validate() error {
	if c.Workspace == "" {
		return fmt.Errorf("workspace cannot be empty")
	}
	if c.ChangelogHead == "" {
		return fmt.Errorf("changelog_head cannot be empty")
	}
	if _, err := url.Parse(c.GithubAPIURL); err != nil {
		return fmt.Errorf("invalid github_api_url: %w", err)
	}
	return nil
}

// ValidateForGitHubOperations validates that a token and repository are present for API calls
func (c *Config) ValidateForGitHubOperations() error {
	if c.GithubToken == "" {
		return ErrMissingToken
	}
	if err := ValidateGitHubOwnerRepo(c.GithubOwner, c.GithubRepo); err != nil {
		return fmt.Errorf("invalid github configuration: %w", err)
	}
	return nil
}

// validName accepts the characters GitHub allows in owner and repository
// names, including leading or trailing '.', '-' and '_' (e.g. ".github").
var validName = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	if !validName.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !validName.MatchString(repo) || repo == "." || repo == ".." {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

// RegisterFlags declares the command-line overrides for every input.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("github-token", "", "GitHub token used for API access")
	fs.String("package-root", "", "Directory of package.json relative to the workspace")
	fs.String("overwrite", "", "Overwrite an existing tag with the same name (\"true\" to enable)")
	fs.String("tag-prefix", "", "Prefix prepended to the version (default \"v\")")
	fs.String("tag-suffix", "", "Suffix appended to the version")
	fs.String("tag-message", "", "Explicit tag message; disables changelog synthesis")
	fs.String("changelog-structure", "", "Per-commit changelog template")
	fs.String("changelog-head", "", "Ref the previous tag is compared against (default \"master\")")
	fs.String("workspace", "", "Workspace root (default $GITHUB_WORKSPACE)")
	fs.String("sha", "", "Commit the tag points at (default $GITHUB_SHA or local HEAD)")
	fs.String("repository", "", "Target repository as owner/repo (default $GITHUB_REPOSITORY)")
	fs.Bool("dry-run", false, "Resolve everything but skip tag and reference writes")
	fs.Bool("debug", false, "Enable debug logging")
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"github-token":        "github_token",
	"package-root":        "package_root",
	"overwrite":           "overwrite",
	"tag-prefix":          "tag_prefix",
	"tag-suffix":          "tag_suffix",
	"tag-message":         "tag_message",
	"changelog-structure": "changelog_structure",
	"changelog-head":      "changelog_head",
	"workspace":           "workspace",
	"sha":                 "sha",
	"repository":          "repository",
	"dry-run":             "dry_run",
	"debug":               "debug",
}

// envKeys lists, per key, the environment variables checked in order.
// INPUT_* is how the Actions runner passes step inputs.
var envKeys = map[string][]string{
	"github_token":        {"INPUT_GITHUB_TOKEN", "GITHUB_TOKEN", "AUTOTAG_GITHUB_TOKEN"},
	"package_root":        {"INPUT_PACKAGE_ROOT", "AUTOTAG_PACKAGE_ROOT"},
	"overwrite":           {"INPUT_OVERWRITE", "AUTOTAG_OVERWRITE"},
	"tag_prefix":          {"INPUT_TAG_PREFIX", "AUTOTAG_TAG_PREFIX"},
	"tag_suffix":          {"INPUT_TAG_SUFFIX", "AUTOTAG_TAG_SUFFIX"},
	"tag_message":         {"INPUT_TAG_MESSAGE", "AUTOTAG_TAG_MESSAGE"},
	"changelog_structure": {"INPUT_CHANGELOG_STRUCTURE", "AUTOTAG_CHANGELOG_STRUCTURE"},
	"changelog_head":      {"INPUT_CHANGELOG_HEAD", "AUTOTAG_CHANGELOG_HEAD"},
	"dry_run":             {"INPUT_DRY_RUN", "AUTOTAG_DRY_RUN"},
	"workspace":           {"GITHUB_WORKSPACE", "AUTOTAG_WORKSPACE"},
	"sha":                 {"GITHUB_SHA", "AUTOTAG_SHA"},
	"repository":          {"GITHUB_REPOSITORY", "AUTOTAG_REPOSITORY"},
	"github_owner":        {"GITHUB_REPOSITORY_OWNER", "AUTOTAG_GITHUB_OWNER"},
	"github_api_url":      {"GITHUB_API_URL", "AUTOTAG_GITHUB_API_URL"},
	"output_file":         {"GITHUB_OUTPUT"},
	"debug":               {"AUTOTAG_DEBUG", "RUNNER_DEBUG"},
	"retry_count":         {"AUTOTAG_RETRY_COUNT"},
}

// LoadConfig resolves the configuration from flags, environment, an optional
// .autotag.yaml file and defaults, in that order of precedence.
func LoadConfig(v *viper.Viper, flags *pflag.FlagSet) (*Config, error) {
	v.SetConfigName(".autotag")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	for key, envs := range envKeys {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind %s flag: %w", name, err)
				}
			}
		}
	}
	defaults := DefaultConfig()
	v.SetDefault("github_api_url", defaults.GithubAPIURL)
	v.SetDefault("workspace", defaults.Workspace)
	v.SetDefault("tag_prefix", defaults.TagPrefix)
	v.SetDefault("changelog_head", defaults.ChangelogHead)
	v.SetDefault("retry_count", defaults.RetryCount)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	config.normalize()
	if err := populateRepositoryDefaults(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// normalize trims inputs and restores defaults for inputs passed as blank strings.
func (c *Config) normalize() {
	for _, s := range []*string{
		&c.GithubToken, &c.GithubOwner, &c.GithubRepo, &c.GithubAPIURL, &c.Repository,
		&c.Workspace, &c.SHA, &c.PackageRoot, &c.Overwrite, &c.TagPrefix, &c.TagSuffix,
		&c.TagMessage, &c.ChangelogStructure, &c.ChangelogHead, &c.OutputFile,
	} {
		*s = strings.TrimSpace(*s)
	}
	defaults := DefaultConfig()
	if c.TagPrefix == "" {
		c.TagPrefix = defaults.TagPrefix
	}
	if c.ChangelogHead == "" {
		c.ChangelogHead = defaults.ChangelogHead
	}
	if c.Workspace == "" {
		c.Workspace = defaults.Workspace
	}
	if c.GithubAPIURL == "" {
		c.GithubAPIURL = defaults.GithubAPIURL
	}
}

// populateRepositoryDefaults fills owner and repo from the owner/repo slug or,
// failing that, from the origin remote of the workspace checkout.
func populateRepositoryDefaults(cfg *Config) error {
	if owner, repo, ok := strings.Cut(cfg.Repository, "/"); ok {
		if cfg.GithubOwner == "" {
			cfg.GithubOwner = owner
		}
		if cfg.GithubRepo == "" {
			cfg.GithubRepo = repo
		}
	}
	if cfg.GithubOwner != "" && cfg.GithubRepo != "" {
		return nil
	}
	dir := cfg.Workspace
	if dir == "" {
		dir = "."
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		// Not a checkout; the API call path reports the missing repository.
		return nil
	}
	remote, err := repo.Remote("origin")
	if err != nil || len(remote.Config().URLs) == 0 {
		return nil
	}
	owner, name, err := parseGitRemoteURL(remote.Config().URLs[0])
	if err != nil {
		return fmt.Errorf("failed to infer repository from origin remote: %w", err)
	}
	if cfg.GithubOwner == "" {
		cfg.GithubOwner = owner
	}
	if cfg.GithubRepo == "" {
		cfg.GithubRepo = name
	}
	return nil
}

// parseGitRemoteURL extracts owner and repository from https, ssh, scp-like or path remotes.
func parseGitRemoteURL(raw string) (string, string, error) {
	path := strings.TrimSpace(raw)
	switch {
	case strings.Contains(path, "://"):
		u, err := url.Parse(path)
		if err != nil {
			return "", "", fmt.Errorf("invalid remote url %q: %w", raw, err)
		}
		path = u.Path
	case !filepath.IsAbs(path) && strings.Contains(path, ":"):
		_, path, _ = strings.Cut(path, ":")
	}
	path = strings.TrimSuffix(strings.Trim(filepath.ToSlash(path), "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("cannot parse owner/repo from %q", raw)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
