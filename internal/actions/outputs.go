package actions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const (
	// OutputFilePermissions is used when the output file does not exist yet.
	OutputFilePermissions = 0644
	// LockTimeout bounds the wait for the output file lock.
	LockTimeout = 30 * time.Second
	// LockRetryInterval is the delay between lock attempts.
	LockRetryInterval = 100 * time.Millisecond
	delimiterPrefix   = "ghadelimiter_"
)

// ErrLockTimeout is returned when the output file lock could not be acquired.
var ErrLockTimeout = errors.New("timed out waiting for output file lock")

// OutputSink records step outputs.
type OutputSink interface {
	SetOutput(ctx context.Context, name, value string) error
}

// OutputWriter appends outputs to the $GITHUB_OUTPUT file, or prints
// name=value lines when no file is configured. Multi-line values use the
// same delimited block in both cases.
type OutputWriter struct {
	fs      afero.Fs
	path    string
	stdout  io.Writer
	lockDir string
}

// NewOutputWriter creates an OutputWriter. An empty path selects stdout.
func NewOutputWriter(fs afero.Fs, path string, stdout io.Writer) *OutputWriter {
	return &OutputWriter{fs: fs, path: path, stdout: stdout, lockDir: os.TempDir()}
}

// SetOutput records one step output.
func (w *OutputWriter) SetOutput(ctx context.Context, name, value string) error {
	if w.path == "" {
		return w.printOutput(name, value)
	}
	block, err := formatOutput(name, value)
	if err != nil {
		return err
	}
	lock := flock.New(w.lockFilename())
	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, LockRetryInterval)
	if err != nil {
		return fmt.Errorf("failed to lock output file: %w", err)
	}
	if !locked {
		return ErrLockTimeout
	}
	defer func() {
		_ = lock.Unlock()
	}()
	f, err := w.fs.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, OutputFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	if _, err := f.WriteString(block); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write output %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

func (w *OutputWriter) printOutput(name, value string) error {
	line := name + "=" + value + "\n"
	if strings.ContainsAny(value, "\r\n") {
		block, err := formatOutput(name, value)
		if err != nil {
			return err
		}
		line = block
	}
	if _, err := io.WriteString(w.stdout, line); err != nil {
		return fmt.Errorf("failed to print output %s: %w", name, err)
	}
	return nil
}

// lockFilename keeps the lock out of the runner's file-commands directory.
// The name is derived from the output path so writers of one file share it.
func (w *OutputWriter) lockFilename() string {
	sum := sha256.Sum256([]byte(w.path))
	return filepath.Join(w.lockDir, "autotag-output-"+hex.EncodeToString(sum[:8])+".lock")
}

func formatOutput(name, value string) (string, error) {
	if name == "" {
		return "", errors.New("output name cannot be empty")
	}
	delimiter := delimiterPrefix + uuid.NewString()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return "", fmt.Errorf("output %s collides with delimiter %s", name, delimiter)
	}
	return name + "<<" + delimiter + "\n" + value + "\n" + delimiter + "\n", nil
}
