package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/compozy/autotag/internal/domain"
	"github.com/spf13/afero"
)

// ErrManifestNotFound is returned when package.json is absent.
var ErrManifestNotFound = errors.New("package.json does not exist")

// ReadManifestUseCase loads package.json and exposes its version.

type ReadManifestUseCase struct {
	FS afero.Fs
}

// Execute reads the manifest at path.
func (uc *ReadManifestUseCase) Execute(_ context.Context, path string) (*domain.Package, error) {
	data, err := afero.ReadFile(uc.FS, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var pkg domain.Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	pkg.Path = path
	return &pkg, nil
}
