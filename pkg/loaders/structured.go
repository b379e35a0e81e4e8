package loaders

import (
	"bytes"
	"context"
	"encoding/json"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DecodeJSON decodes a JSON document into generic Go values.
func DecodeJSON(_ context.Context, _ string, data []byte) (any, error) {
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeJSONC decodes JSON that may carry comments and trailing commas.
func DecodeJSONC(ctx context.Context, name string, data []byte) (any, error) {
	return DecodeJSON(ctx, name, jsonc.ToJSON(data))
}

// DecodeYAML decodes a single YAML document. Mapping keys decode as strings.
func DecodeYAML(_ context.Context, _ string, data []byte) (any, error) {
	var out any
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var cborDecMode = mustCBORDecMode()

func mustCBORDecMode() cbor.DecMode {
	mode, err := cbor.DecOptions{
		// map[interface{}]interface{} is the CBOR default for any targets;
		// downstream consumers expect string keys.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("loaders: CBOR decoder initialization failed: " + err.Error())
	}
	return mode
}

// DecodeCBOR decodes a CBOR item into generic Go values.
func DecodeCBOR(_ context.Context, _ string, data []byte) (any, error) {
	var out any
	if err := cborDecMode.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeText returns the content as a string.
func DecodeText(_ context.Context, _ string, data []byte) (any, error) {
	return string(data), nil
}
