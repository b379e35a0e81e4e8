package loaders

import (
	"context"
	"errors"
	"fmt"
)

// Decoder turns raw bytes into data. The name is informational and used in
// diagnostics.
type Decoder func(ctx context.Context, name string, data []byte) (any, error)

// FromDecoder builds a Loader that reads name through reader and hands the
// bytes to decode.
func FromDecoder(reader Reader, decode Decoder) Loader {
	return LoaderFunc(func(ctx context.Context, name string) (any, error) {
		if reader == nil {
			return nil, errors.New("loaders: reader is nil")
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := reader.Read(ctx, name)
		if err != nil {
			return nil, err
		}
		out, err := decode(ctx, name, data)
		if err != nil {
			return nil, fmt.Errorf("loaders: decode %s: %w", name, err)
		}
		return out, nil
	})
}
