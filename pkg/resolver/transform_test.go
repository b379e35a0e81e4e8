package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-festoon/pkg/interpolate"
	"github.com/goliatone/go-festoon/pkg/resolver"
	"github.com/goliatone/go-festoon/pkg/source"
)

func TestTransform(t *testing.T) {
	r := newTestResolver(t)
	count := r.Transform("foo", func(data any, _ source.Params) (any, error) {
		return len(data.([]any)), nil
	})
	if err := r.SetSource("count", count); err != nil {
		t.Fatalf("SetSource: %v", err)
	}

	res, err := r.Load(context.Background(), resolver.ID("count"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, _ := res.Get("count")
	if got != 2 {
		t.Fatalf("expected 2 rows, got %v", got)
	}
}

func TestFilter(t *testing.T) {
	r := newTestResolver(t)
	above := r.Filter("foo", func(item any, params source.Params) bool {
		floor, _ := params.Lookup("min")
		return item.(map[string]any)["a"].(string) >= floor
	})
	if err := r.SetSource("above", above); err != nil {
		t.Fatalf("SetSource: %v", err)
	}

	res, err := r.Load(context.Background(), resolver.ID("above"), source.Params{"min": 2})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, _ := res.Get("above")
	want := []any{map[string]any{"a": "2", "b": "3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestFindByParam(t *testing.T) {
	r := newTestResolver(t)
	if err := r.SetSource("row", r.FindByParam("foo", "id", "a")); err != nil {
		t.Fatalf("SetSource: %v", err)
	}

	tests := []struct {
		name   string
		params source.Params
		want   any
	}{
		{name: "numeric param matches text field", params: source.Params{"id": 2}, want: map[string]any{"a": "2", "b": "3"}},
		{name: "no match", params: source.Params{"id": "9"}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Load(context.Background(), resolver.ID("row"), tt.params)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			got, _ := res.Get("row")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("find mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("missing param", func(t *testing.T) {
		_, err := r.Load(context.Background(), resolver.ID("row"), nil)
		if !errors.Is(err, interpolate.ErrMissingParameter) {
			t.Fatalf("expected missing parameter, got %v", err)
		}
	})
}

func TestFindByParamRejectsNonList(t *testing.T) {
	r := resolver.New(resolver.WithSources(map[string]source.Source{
		"one": source.Func(func(context.Context, source.Params) (any, error) {
			return map[string]any{"id": "1"}, nil
		}),
	}))
	if err := r.SetSource("find", r.FindByParam("one", "id", "")); err != nil {
		t.Fatalf("SetSource: %v", err)
	}

	if _, err := r.Load(context.Background(), resolver.ID("find"), source.Params{"id": "1"}); err == nil {
		t.Fatalf("expected error for non-list data")
	}
}
