package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/autotag/internal/domain"
	"github.com/compozy/autotag/internal/repository"
)

// CreateTagUseCase creates the annotated tag object.

type CreateTagUseCase struct {
	GithubRepo repository.GithubRepository
}

// Execute creates tag name with message against the commit sha.
func (uc *CreateTagUseCase) Execute(ctx context.Context, name, message, sha string) (*domain.TagObject, error) {
	if sha == "" {
		return nil, fmt.Errorf("failed to create tag %s: commit sha is empty", name)
	}
	tag, err := uc.GithubRepo.CreateTag(ctx, name, message, sha)
	if err != nil {
		return nil, err
	}
	return tag, nil
}
