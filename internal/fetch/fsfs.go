package fetch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

func loadFromFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("fetch: fs path is required")
	}
	if files == nil {
		return nil, errors.New("fetch: fs is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	clean := fsName(name)
	if !fs.ValidPath(clean) {
		return nil, fmt.Errorf("fetch: invalid fs path %q", name)
	}

	data, err := fs.ReadFile(files, clean)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// fsName converts an OS style relative path into an fs.FS name.
func fsName(name string) string {
	clean := path.Clean(filepath.ToSlash(name))
	return strings.TrimPrefix(clean, "/")
}
