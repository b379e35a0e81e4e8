// Package fetch implements loaders.Reader by delegating to file, fs.FS or HTTP
// strategies and removing gzip, zstd or lz4 compression based on the name's
// suffix.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-festoon/pkg/loaders"
)

// Fetcher reads bytes for loader names.
type Fetcher struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ loaders.Reader = (*Fetcher)(nil)

// New constructs a Fetcher from pre-resolved options.
func New(options loaders.ReaderOptions) *Fetcher {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Fetcher{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Read fetches name and returns its decompressed bytes.
func (f *Fetcher) Read(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("fetch: name is required")
	}

	var (
		data []byte
		err  error
	)

	switch {
	case loaders.IsURL(name):
		if !f.allowHTTP {
			return nil, fmt.Errorf("fetch: http support disabled for %q", name)
		}
		data, err = loadHTTP(ctx, f.http, name, f.timeout)
	case f.fs != nil:
		data, err = loadFromFS(ctx, f.fs, name)
	default:
		data, err = loadFile(ctx, name)
	}
	if err != nil {
		return nil, err
	}

	return decompress(name, data)
}
