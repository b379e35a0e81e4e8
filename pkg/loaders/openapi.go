package loaders

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
)

// DecodeOpenAPI parses and validates an OpenAPI 3 document (JSON or YAML) and
// returns the *openapi3.T. External references are not followed.
func DecodeOpenAPI(ctx context.Context, _ string, data []byte) (any, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}
