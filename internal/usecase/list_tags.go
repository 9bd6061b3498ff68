package usecase

import (
	"context"
	"time"

	"github.com/compozy/autotag/internal/domain"
	"github.com/compozy/autotag/internal/repository"
	"go.uber.org/zap"
)

// TagsPerPage is the page size requested from the tag listing endpoint.
const TagsPerPage = 100

// ListTagsUseCase collects every remote tag, page by page.
type ListTagsUseCase struct {
	GithubRepo repository.GithubRepository
	Logger     *zap.Logger
	MaxRetries uint64
	RetryDelay time.Duration
}

// Execute pages through the tag listing until an empty page. A page that keeps
// failing ends the listing early and the tags gathered so far are returned.
func (uc *ListTagsUseCase) Execute(ctx context.Context) ([]domain.Tag, error) {
	logger := loggerOrNop(uc.Logger)
	var tags []domain.Tag
	for page := 1; ; page++ {
		batch, err := callWithRetry(ctx, uc.MaxRetries, uc.RetryDelay,
			func(ctx context.Context) ([]domain.Tag, error) {
				return uc.GithubRepo.ListTags(ctx, page, TagsPerPage)
			})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return tags, ctxErr
			}
			logger.Warn("Failed to list tags, continuing with partial results",
				zap.Int("page", page), zap.Int("tags", len(tags)), zap.Error(err))
			return tags, nil
		}
		if len(batch) == 0 {
			logger.Debug("Listed tags", zap.Int("pages", page-1), zap.Int("tags", len(tags)))
			return tags, nil
		}
		tags = append(tags, batch...)
	}
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
