package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/autotag/internal/domain"
	"github.com/compozy/autotag/internal/repository"
	"go.uber.org/zap"
)

type referenceStep int

const (
	stepUpdate referenceStep = iota
	stepCreate
	stepDone
)

// WriteReferenceUseCase points the tag reference at a new tag object.
type WriteReferenceUseCase struct {
	GithubRepo repository.GithubRepository
	Logger     *zap.Logger
}

// Execute force-updates the reference when overwriting and creates it
// otherwise. A failed update falls through to creation; a failed creation is
// returned to the caller.
func (uc *WriteReferenceUseCase) Execute(
	ctx context.Context,
	name, sha string,
	overwrite bool,
) (*domain.Reference, error) {
	logger := loggerOrNop(uc.Logger)
	step := stepCreate
	if overwrite {
		step = stepUpdate
	}
	var ref *domain.Reference
	for step != stepDone {
		switch step {
		case stepUpdate:
			updated, err := uc.GithubRepo.UpdateRef(ctx, name, sha, true)
			if err != nil {
				logger.Warn("Failed to update tag reference, creating it instead",
					zap.String("ref", domain.ShortTagRef(name)), zap.Error(err))
				step = stepCreate
				continue
			}
			ref = updated
			step = stepDone
		case stepCreate:
			created, err := uc.GithubRepo.CreateRef(ctx, name, sha)
			if err != nil {
				return nil, fmt.Errorf("failed to write tag reference: %w", err)
			}
			ref = created
			step = stepDone
		}
	}
	return ref, nil
}
