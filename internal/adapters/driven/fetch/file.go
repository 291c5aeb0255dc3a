package fetch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/veldt-labs/eventscope/internal/core/domain"
	"github.com/veldt-labs/eventscope/internal/core/ports/driven"
)

// Ensure FileFetcher implements the interface.
var _ driven.DocumentFetcher = (*FileFetcher)(nil)

// FileFetcher reads the harvester artifact from a local file, the way the
// harvester itself writes it.
type FileFetcher struct {
	path string
}

// NewFileFetcher creates a fetcher for a local artifact path.
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

// Path returns the watched artifact path.
func (f *FileFetcher) Path() string {
	return f.path
}

// Fetch reads the artifact. A missing file maps to
// domain.ErrDocumentUnavailable so callers fall back to an empty
// working set instead of failing.
func (f *FileFetcher) Fetch(ctx context.Context) (*driven.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", f.path, domain.ErrDocumentUnavailable)
		}
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	return &driven.FetchResult{URI: f.path, Data: data}, nil
}
