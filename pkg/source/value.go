package source

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrUnsupportedValue is returned by FromValue for values that have no Source
// representation (numbers, booleans, nil).
var ErrUnsupportedValue = errors.New("source: unsupported value")

// FromValue converts a generically decoded value (YAML, JSON, koanf) into a
// Source. Strings become paths, sequences become lists, and mappings become
// maps unless they carry a "file" key, in which case the file is the path.
func FromValue(value any) (Source, error) {
	switch v := value.(type) {
	case Source:
		return v, nil
	case string:
		return Path(v), nil
	case func(context.Context, Params) (any, error):
		return Func(v), nil
	case []string:
		out := make(List, len(v))
		for idx, item := range v {
			out[idx] = Path(item)
		}
		return out, nil
	case []any:
		out := make(List, len(v))
		for idx, item := range v {
			src, err := FromValue(item)
			if err != nil {
				return nil, fmt.Errorf("source: list index %d: %w", idx, err)
			}
			out[idx] = src
		}
		return out, nil
	case map[string]string:
		if file, ok := v["file"]; ok {
			return Path(file), nil
		}
		out := make(Map, len(v))
		for key, item := range v {
			out[key] = Path(item)
		}
		return out, nil
	case map[string]any:
		if file, ok := v["file"]; ok {
			path, ok := file.(string)
			if !ok {
				return nil, fmt.Errorf("source: file must be a string, got %T: %w", file, ErrUnsupportedValue)
			}
			return Path(path), nil
		}
		out := make(Map, len(v))
		for key, item := range v {
			src, err := FromValue(item)
			if err != nil {
				return nil, fmt.Errorf("source: key %q: %w", key, err)
			}
			out[key] = src
		}
		return out, nil
	case map[any]any:
		converted := make(map[string]any, len(v))
		for key, item := range v {
			converted[fmt.Sprint(key)] = item
		}
		return FromValue(converted)
	default:
		return nil, fmt.Errorf("source: %T: %w", value, ErrUnsupportedValue)
	}
}

// MapFromValue converts a decoded sources section into id keyed sources. It
// accepts either a mapping of id to source or a sequence of entries shaped as
// {id: ..., file: ...} or {id: ..., source: ...}.
func MapFromValue(value any) (map[string]Source, error) {
	switch v := value.(type) {
	case nil:
		return map[string]Source{}, nil
	case []any:
		entries, err := EntriesFromValue(v)
		if err != nil {
			return nil, err
		}
		out := make(map[string]Source, len(entries))
		for _, entry := range entries {
			out[entry.ID] = entry.Source
		}
		return out, nil
	case map[string]any:
		out := make(map[string]Source, len(v))
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			src, err := FromValue(v[key])
			if err != nil {
				return nil, fmt.Errorf("source: %q: %w", key, err)
			}
			out[key] = src
		}
		return out, nil
	default:
		return nil, fmt.Errorf("source: sources must be a mapping or a list, got %T: %w", value, ErrUnsupportedValue)
	}
}

// EntriesFromValue converts a decoded list of {id, ...} records.
func EntriesFromValue(items []any) ([]Entry, error) {
	entries := make([]Entry, 0, len(items))
	for idx, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("source: entry %d must be a mapping, got %T: %w", idx, item, ErrUnsupportedValue)
		}
		id, _ := record["id"].(string)
		var (
			src Source
			err error
		)
		switch {
		case record["source"] != nil:
			src, err = FromValue(record["source"])
		case record["file"] != nil:
			src, err = FromValue(map[string]any{"file": record["file"]})
		default:
			err = fmt.Errorf("entry has neither file nor source: %w", ErrUnsupportedValue)
		}
		if err != nil {
			return nil, fmt.Errorf("source: entry %d (%q): %w", idx, id, err)
		}
		entries = append(entries, Entry{ID: id, Source: src})
	}
	return entries, nil
}
