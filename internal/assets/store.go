package assets

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Store holds the binary image assets referenced by product records. Assets
// are addressed by the generated name returned from Save.
type Store interface {
	Save(ctx context.Context, reader io.Reader, originalName string) (string, error)
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	List(ctx context.Context) ([]string, error)
}

// generateName builds the stored asset name from the current time and the
// uploaded file's base name. Millisecond granularity is not collision-proof
// under concurrent uploads within the same millisecond; at catalog-admin
// write rates that is an accepted weak guarantee.
func generateName(originalName string) string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), sanitizeBaseName(originalName))
}

// sanitizeBaseName strips any path components so the stored name cannot
// escape the upload directory.
func sanitizeBaseName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, "/", "")
	base = strings.ReplaceAll(base, "\\", "")
	if base == "" || base == "." || base == ".." {
		return "upload"
	}
	return base
}
