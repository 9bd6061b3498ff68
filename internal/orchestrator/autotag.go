package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/compozy/autotag/internal/actions"
	"github.com/compozy/autotag/internal/config"
	"github.com/compozy/autotag/internal/domain"
	"github.com/compozy/autotag/internal/repository"
	"github.com/compozy/autotag/internal/usecase"
	"go.uber.org/zap"
)

// ErrRunFailed marks the conditions that fail the step: a missing token, a
// missing manifest, and a rejected tag or reference creation.
var ErrRunFailed = errors.New("autotag failed")

// AutoTagOrchestrator makes sure the tag for the manifest version exists.
type AutoTagOrchestrator struct {
	gitRepo    repository.GitRepository
	githubRepo repository.GithubRepository
	fsRepo     repository.FileSystemRepository
	outputs    actions.OutputSink
	logger     *zap.Logger
}

// NewAutoTagOrchestrator creates a new tagging orchestrator.
func NewAutoTagOrchestrator(
	gitRepo repository.GitRepository,
	githubRepo repository.GithubRepository,
	fsRepo repository.FileSystemRepository,
	outputs actions.OutputSink,
	logger *zap.Logger,
) *AutoTagOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutoTagOrchestrator{
		gitRepo:    gitRepo,
		githubRepo: githubRepo,
		fsRepo:     fsRepo,
		outputs:    outputs,
		logger:     logger,
	}
}

// Execute runs the tagging workflow. It returns a nil release when the tag
// already exists and overwriting is disabled. Errors wrapping ErrRunFailed
// must fail the step; any other failure is reported as a warning, the tag
// outputs are blanked and Execute returns nil, nil.
func (o *AutoTagOrchestrator) Execute(ctx context.Context, cfg *config.Config) (release *domain.Release, err error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultWorkflowTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			release = nil
			err = o.recoverRun(ctx, fmt.Errorf("panic: %v", r))
		}
	}()
	release, err = o.run(ctx, cfg)
	if err == nil {
		return release, nil
	}
	if errors.Is(err, ErrRunFailed) {
		o.logger.Error(err.Error())
		return nil, err
	}
	return nil, o.recoverRun(ctx, err)
}

func (o *AutoTagOrchestrator) run(ctx context.Context, cfg *config.Config) (*domain.Release, error) {
	// Only the token is checked up front so that the version output is set
	// before anything that needs the repository can fail.
	githubErr := cfg.ValidateForGitHubOperations()
	if errors.Is(githubErr, config.ErrMissingToken) {
		return nil, fatal(githubErr)
	}
	pkg, err := o.readManifest(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if githubErr != nil {
		return nil, githubErr
	}
	tags, err := o.listTags(ctx, cfg)
	if err != nil {
		return nil, err
	}
	resolver := &usecase.ResolveTagUseCase{Logger: o.logger}
	resolution := resolver.Execute(ctx, cfg.TagPrefix, pkg.Version, cfg.TagSuffix, tags)
	if resolution.Exists() && !cfg.OverwriteEnabled() {
		o.logger.Info("Tag exists and overwrite is disabled, nothing to do", zap.String("tag", resolution.Name))
		return nil, nil
	}
	if err := ValidateTagName(resolution.Name); err != nil {
		o.logger.Warn("Tag name may be rejected by the remote", zap.Error(err))
	}
	changelog := &usecase.GenerateChangelogUseCase{
		GithubRepo: o.githubRepo,
		Logger:     o.logger,
		MaxRetries: cfg.RetryCount,
		RetryDelay: DefaultRetryDelay,
	}
	message := changelog.Execute(ctx, usecase.ChangelogInput{
		TagName:  resolution.Name,
		Version:  pkg.Version,
		Message:  cfg.TagMessage,
		Template: cfg.ChangelogTemplate(),
		Head:     cfg.ChangelogHead,
		Tags:     tags,
	})
	sha, err := o.resolveCommit(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return o.writeTag(ctx, pkg.Version, resolution, message, sha)
}

func (o *AutoTagOrchestrator) readManifest(ctx context.Context, cfg *config.Config) (*domain.Package, error) {
	reader := &usecase.ReadManifestUseCase{FS: o.fsRepo}
	pkg, err := reader.Execute(ctx, cfg.ManifestPath())
	if err != nil {
		if errors.Is(err, usecase.ErrManifestNotFound) {
			return nil, fatal(err)
		}
		return nil, err
	}
	if err := o.outputs.SetOutput(ctx, OutputVersion, pkg.Version); err != nil {
		return nil, err
	}
	o.logger.Debug("Read manifest", zap.String("path", pkg.Path), zap.String("version", pkg.Version))
	return pkg, nil
}

func (o *AutoTagOrchestrator) listTags(ctx context.Context, cfg *config.Config) ([]domain.Tag, error) {
	lister := &usecase.ListTagsUseCase{
		GithubRepo: o.githubRepo,
		Logger:     o.logger,
		MaxRetries: cfg.RetryCount,
		RetryDelay: DefaultRetryDelay,
	}
	tags, err := lister.Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// resolveCommit returns the triggering commit, falling back to the local HEAD.
func (o *AutoTagOrchestrator) resolveCommit(ctx context.Context, cfg *config.Config) (string, error) {
	sha := cfg.SHA
	if sha == "" {
		head, err := o.gitRepo.HeadCommit(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to resolve commit to tag: %w", err)
		}
		sha = head
		if branch, err := o.gitRepo.CurrentBranch(ctx); err == nil {
			o.logger.Debug("Tagging local HEAD", zap.String("branch", branch), zap.String("sha", sha))
		}
	}
	if err := ValidateCommitSHA(sha); err != nil {
		o.logger.Warn("Commit sha may be rejected by the remote", zap.Error(err))
	}
	return sha, nil
}

func (o *AutoTagOrchestrator) writeTag(
	ctx context.Context,
	version string,
	resolution *usecase.TagResolution,
	message, sha string,
) (*domain.Release, error) {
	creator := &usecase.CreateTagUseCase{GithubRepo: o.githubRepo}
	tag, err := creator.Execute(ctx, resolution.Name, message, sha)
	if err != nil {
		return nil, fatal(err)
	}
	writer := &usecase.WriteReferenceUseCase{GithubRepo: o.githubRepo, Logger: o.logger}
	ref, err := writer.Execute(ctx, resolution.Name, tag.SHA, resolution.Exists())
	if err != nil {
		return nil, fatal(err)
	}
	release := domain.NewRelease(version, tag, ref)
	if err := o.report(ctx, release); err != nil {
		return nil, err
	}
	o.logger.Info("Tagged release", zap.String("tag", release.TagName), zap.String("ref", release.TagRef))
	return release, nil
}

func (o *AutoTagOrchestrator) report(ctx context.Context, release *domain.Release) error {
	values := map[string]string{
		OutputTagName:    release.TagName,
		OutputTagSHA:     release.TagSHA,
		OutputTagURI:     release.TagURI,
		OutputTagMessage: release.TagMessage,
		OutputTagRef:     release.TagRef,
	}
	for _, name := range tagOutputs {
		if err := o.outputs.SetOutput(ctx, name, values[name]); err != nil {
			return fmt.Errorf("failed to set output %s: %w", name, err)
		}
	}
	return nil
}

// recoverRun reports an unexpected failure as a warning and blanks the tag outputs.
func (o *AutoTagOrchestrator) recoverRun(ctx context.Context, cause error) error {
	o.logger.Warn(cause.Error())
	for _, name := range tagOutputs {
		if err := o.outputs.SetOutput(context.WithoutCancel(ctx), name, ""); err != nil {
			o.logger.Debug("Failed to blank output", zap.String("output", name), zap.Error(err))
		}
	}
	return nil
}

func fatal(err error) error {
	return fmt.Errorf("%w: %w", ErrRunFailed, err)
}
