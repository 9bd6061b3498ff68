package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/compozy/autotag/internal/domain"
	"go.uber.org/zap"
)

// TagResolution is the computed tag name and the listed tag carrying it, if any.
type TagResolution struct {
	Name     string
	Existing *domain.Tag
}

// Exists reports whether a tag with the computed name was listed.
func (r *TagResolution) Exists() bool {
	return r.Existing != nil
}

// ResolveTagUseCase derives the tag name and checks the listing for it.
type ResolveTagUseCase struct {
	Logger *zap.Logger
}

// Execute computes prefix+version+suffix and finds the first listed tag with that name.
func (uc *ResolveTagUseCase) Execute(
	_ context.Context,
	prefix, version, suffix string,
	tags []domain.Tag,
) *TagResolution {
	logger := loggerOrNop(uc.Logger)
	name := domain.TagName(prefix, version, suffix)
	uc.describeVersion(logger, prefix, version, suffix, tags)
	existing, found := domain.FindTag(tags, name)
	if !found {
		return &TagResolution{Name: name}
	}
	logger.Warn(fmt.Sprintf("%q tag already exists.", name), zap.String("sha", existing.Commit.SHA))
	return &TagResolution{Name: name, Existing: existing}
}

// describeVersion logs semver diagnostics. It never rejects a version.
func (uc *ResolveTagUseCase) describeVersion(
	logger *zap.Logger,
	prefix, version, suffix string,
	tags []domain.Tag,
) {
	current, err := domain.NewVersion(version)
	if err != nil {
		logger.Debug("Version is not semver, tagging it as is", zap.String("version", version))
		return
	}
	if !current.IsStable() {
		logger.Debug("Tagging a pre-release or 0.x version", zap.String("version", version))
	}
	if len(tags) == 0 {
		return
	}
	latest := strings.TrimSuffix(strings.TrimPrefix(tags[0].Name, prefix), suffix)
	previous, err := domain.NewVersion(latest)
	if err == nil && previous.Compare(current) > 0 {
		logger.Debug("Latest listed tag is newer than the manifest version",
			zap.String("latest", tags[0].Name), zap.String("version", version))
	}
}
