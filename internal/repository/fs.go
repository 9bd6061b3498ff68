package repository

import "github.com/spf13/afero"

// FileSystemRepository is the filesystem the manifest is read from and step
// outputs are appended to.

type FileSystemRepository interface {
	afero.Fs
}

// NewFileSystemRepository returns the host filesystem.
func NewFileSystemRepository() FileSystemRepository {
	return afero.NewOsFs()
}
