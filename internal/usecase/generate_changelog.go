package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/compozy/autotag/internal/domain"
	"github.com/compozy/autotag/internal/repository"
	"go.uber.org/zap"
)

var errNoBaseTag = errors.New("no previous tag to compare against")

// GenerateChangelogUseCase resolves the tag message, synthesizing it from
// the commits since the latest tag when none was given.
type GenerateChangelogUseCase struct {
	GithubRepo repository.GithubRepository
	Logger     *zap.Logger
	MaxRetries uint64
	RetryDelay time.Duration
}

// ChangelogInput carries everything needed to resolve a tag message.
type ChangelogInput struct {
	TagName  string
	Version  string
	Message  string
	Template string
	Head     string
	Tags     []domain.Tag
}

// Execute returns the tag message. It never fails: synthesis errors fall
// back to the tag name and a blank result becomes "Version <version>".
func (uc *GenerateChangelogUseCase) Execute(ctx context.Context, in ChangelogInput) string {
	logger := loggerOrNop(uc.Logger)
	message := strings.TrimSpace(in.Message)
	if message == "" && len(in.Tags) > 0 {
		changelog, err := uc.synthesize(ctx, in)
		if err != nil {
			logger.Warn("Failed to generate changelog, using tag name as message",
				zap.String("tag", in.TagName), zap.Error(err))
			changelog = in.TagName
		}
		message = changelog
	}
	if strings.TrimSpace(message) == "" {
		message = "Version " + in.Version
	}
	return message
}

func (uc *GenerateChangelogUseCase) synthesize(ctx context.Context, in ChangelogInput) (string, error) {
	base := in.Tags[0].Name
	if base == "" {
		return "", errNoBaseTag
	}
	commits, err := callWithRetry(ctx, uc.MaxRetries, uc.RetryDelay,
		func(ctx context.Context) ([]domain.Commit, error) {
			return uc.GithubRepo.CompareCommits(ctx, base, in.Head)
		})
	if err != nil {
		return "", err
	}
	loggerOrNop(uc.Logger).Debug("Synthesized changelog",
		zap.String("base", base), zap.String("head", in.Head), zap.Int("commits", len(commits)))
	return domain.RenderChangelog(in.Template, commits), nil
}
