package source_test

import (
	"testing"

	"github.com/goliatone/go-festoon/pkg/source"
)

func TestParams_Lookup(t *testing.T) {
	params := source.Params{"name": "baz", "n": 3, "f": 1.5, "ok": true}

	cases := map[string]string{"name": "baz", "n": "3", "f": "1.5", "ok": "true"}
	for key, want := range cases {
		got, ok := params.Lookup(key)
		if !ok {
			t.Fatalf("lookup %q: missing", key)
		}
		if got != want {
			t.Fatalf("lookup %q: got %q want %q", key, got, want)
		}
	}

	if _, ok := params.Lookup("missing"); ok {
		t.Fatalf("expected missing key to report false")
	}

	var empty source.Params
	if _, ok := empty.Lookup("name"); ok {
		t.Fatalf("nil params should not resolve keys")
	}
}

func TestParams_MergeDoesNotMutate(t *testing.T) {
	base := source.Params{"a": "1"}
	merged := base.Merge(source.Params{"a": "2", "b": "3"})

	if base["a"] != "1" || len(base) != 1 {
		t.Fatalf("base params mutated: %#v", base)
	}
	if merged["a"] != "2" || merged["b"] != "3" {
		t.Fatalf("unexpected merge result: %#v", merged)
	}
}
