// Package resolver loads replay files and chart timing from the local filesystem.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/huangsam/replaystat/internal/contract"
)

// FileReplayResolver reads replay files named by scorekey from a directory.
type FileReplayResolver struct{}

var _ contract.ReplayResolver = &FileReplayResolver{}

// NewFileReplayResolver creates a resolver for replay files on disk.
func NewFileReplayResolver() *FileReplayResolver {
	return &FileReplayResolver{}
}

// Resolve reads prefix/scorekey. A missing file wraps contract.ErrReplayNotFound.
func (r *FileReplayResolver) Resolve(_ context.Context, prefix, scorekey string) ([]byte, error) {
	if scorekey == "" || scorekey != filepath.Base(scorekey) {
		return nil, fmt.Errorf("%w: invalid scorekey %q", contract.ErrReplayNotFound, scorekey)
	}
	data, err := os.ReadFile(filepath.Join(prefix, scorekey))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", contract.ErrReplayNotFound, scorekey)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read replay %s: %w", scorekey, err)
	}
	return data, nil
}
