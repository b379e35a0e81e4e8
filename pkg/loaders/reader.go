package loaders

import (
	"context"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

// Compression suffixes handled transparently by readers.
const (
	CompressionGzip = ".gz"
	CompressionZstd = ".zst"
	CompressionLZ4  = ".lz4"
)

// CompressionExtensions lists the suffixes readers decompress.
var CompressionExtensions = []string{CompressionGzip, CompressionZstd, CompressionLZ4}

// Reader fetches raw bytes for a name (file path, fs.FS entry or URL) and
// removes any compression layer. Implementations live under internal/fetch.
type Reader interface {
	Read(ctx context.Context, name string) ([]byte, error)
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func(ctx context.Context, name string) ([]byte, error)

// Read implements Reader.
func (f ReaderFunc) Read(ctx context.Context, name string) ([]byte, error) {
	return f(ctx, name)
}

// ReaderOptions configures how a Reader resolves names.
type ReaderOptions struct {
	// FileSystem serves non-URL names; the operating system is used when nil.
	FileSystem fs.FS

	// HTTPClient enables http(s) names. Nil disables them unless
	// AllowHTTPFallback is true.
	HTTPClient *http.Client

	// AllowHTTPFallback enables HTTP with a default client.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration
}

// ReaderOption mutates ReaderOptions prior to construction.
type ReaderOption func(*ReaderOptions)

// WithFileSystem serves names from files instead of the OS filesystem.
func WithFileSystem(files fs.FS) ReaderOption {
	return func(opts *ReaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote sources.
func WithHTTPClient(client *http.Client) ReaderOption {
	return func(opts *ReaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading with a default client and an optional
// timeout.
func WithHTTPFallback(timeout time.Duration) ReaderOption {
	return func(opts *ReaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// NewReaderOptions applies a set of ReaderOption values.
func NewReaderOptions(options ...ReaderOption) ReaderOptions {
	cfg := ReaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// TrimCompression strips a known compression suffix from name.
func TrimCompression(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, suffix := range CompressionExtensions {
		if strings.HasSuffix(lower, suffix) {
			return name[:len(name)-len(suffix)], true
		}
	}
	return name, false
}

// IsURL reports whether name should be fetched over HTTP.
func IsURL(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
