package fs

import (
	"context"
	"errors"
	"os"

	"github.com/fwojciec/sentimeter"
)

// Ensure FileFetcher implements sentimeter.Fetcher at compile time.
var _ sentimeter.Fetcher = (*FileFetcher)(nil)

// FileFetcher serves a page saved to disk. Every fetch returns the file's
// content regardless of the requested URL, so a page can be analyzed offline
// under its original address.
type FileFetcher struct {
	path string
}

// NewFileFetcher creates a FileFetcher reading from path.
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

// Fetch returns the content of the saved page.
func (f *FileFetcher) Fetch(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", sentimeter.Errorf(sentimeter.ENOTFOUND, "page file not found: %s", f.path)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close is a no-op.
func (f *FileFetcher) Close() error {
	return nil
}
