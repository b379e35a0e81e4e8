package fetch

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/goliatone/go-festoon/pkg/loaders"
)

func decompress(name string, data []byte) ([]byte, error) {
	switch compressionOf(name) {
	case loaders.CompressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("fetch: gzip %s: %w", name, err)
		}
		defer zr.Close()
		return readAll(name, "gzip", zr)
	case loaders.CompressionZstd:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("fetch: zstd %s: %w", name, err)
		}
		defer zr.Close()
		return readAll(name, "zstd", zr)
	case loaders.CompressionLZ4:
		return readAll(name, "lz4", lz4.NewReader(bytes.NewReader(data)))
	default:
		return data, nil
	}
}

func readAll(name, codec string, r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("fetch: %s %s: %w", codec, name, err)
	}
	return out, nil
}

func compressionOf(name string) string {
	clean := name
	if loaders.IsURL(name) {
		if u, err := url.Parse(name); err == nil {
			clean = u.Path
		}
	}
	lower := strings.ToLower(clean)
	for _, suffix := range loaders.CompressionExtensions {
		if strings.HasSuffix(lower, suffix) {
			return suffix
		}
	}
	return ""
}
