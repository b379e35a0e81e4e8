package resolver_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-festoon/pkg/interpolate"
	"github.com/goliatone/go-festoon/pkg/loaders"
	"github.com/goliatone/go-festoon/pkg/registry"
	"github.com/goliatone/go-festoon/pkg/resolver"
	"github.com/goliatone/go-festoon/pkg/source"
)

var (
	fooRows = []any{
		map[string]any{"a": "1", "b": "2"},
		map[string]any{"a": "2", "b": "3"},
	}
	barRows = []any{
		map[string]any{"a": "3", "b": "4"},
	}
)

func newTestResolver(t *testing.T, options ...resolver.Option) *resolver.Resolver {
	t.Helper()
	base := []resolver.Option{
		resolver.WithBasePath("testdata"),
		resolver.WithSources(map[string]source.Source{
			"foo": source.Path("foo.csv"),
			"bar": source.Path("bar.csv"),
		}),
	}
	r := resolver.New(append(base, options...)...)
	if err := r.Err(); err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

// recorder is a loader that remembers every name it was asked for.
type recorder struct {
	mu    sync.Mutex
	names []string
}

func (rec *recorder) Load(_ context.Context, name string) (any, error) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.names = append(rec.names, name)
	return name, nil
}

func (rec *recorder) Names() []string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]string(nil), rec.names...)
}

func TestLoadSingleID(t *testing.T) {
	r := newTestResolver(t)

	res, err := r.Load(context.Background(), resolver.ID("foo"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]string{"foo"}, res.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	got, _ := res.Get("foo")
	if diff := cmp.Diff(fooRows, got); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if res.Positional() {
		t.Fatalf("single id result should be keyed")
	}
}

func TestLoadIDsIsPositionalAndDeduplicated(t *testing.T) {
	r := newTestResolver(t)

	res, err := r.Load(context.Background(), resolver.IDs("bar", "foo", "bar"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !res.Positional() {
		t.Fatalf("expected positional result")
	}
	if diff := cmp.Diff([]string{"bar", "foo"}, res.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{barRows, fooRows}, res.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAliases(t *testing.T) {
	r := newTestResolver(t)

	res, err := r.Load(context.Background(), resolver.Aliases(map[string]string{
		"second": "bar",
		"first":  "foo",
	}), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := map[string]any{"first": fooRows, "second": barRows}
	if diff := cmp.Diff(want, res.Map()); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"first", "second"}, res.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWildcardFollowsSetSources(t *testing.T) {
	r := newTestResolver(t)
	if err := r.SetSources(map[string]source.Source{
		"only": source.Path("bar.csv"),
	}); err != nil {
		t.Fatalf("SetSources: %v", err)
	}

	res, err := r.Load(context.Background(), resolver.ID("*"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := map[string]any{"only": barRows}
	if diff := cmp.Diff(want, res.Map()); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCompositeSources(t *testing.T) {
	r := newTestResolver(t)
	err := r.AddSources(map[string]source.Source{
		"both": source.List{source.Path("foo.csv"), source.Path("bar.csv")},
		"named": source.Map{
			"left":  source.Path("foo.csv"),
			"right": source.List{source.Path("#bar")},
		},
	})
	if err != nil {
		t.Fatalf("AddSources: %v", err)
	}

	res, err := r.Load(context.Background(), resolver.IDs("both", "named"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []any{
		[]any{fooRows, barRows},
		map[string]any{"left": fooRows, "right": []any{barRows}},
	}
	if diff := cmp.Diff(want, res.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadReferences(t *testing.T) {
	r := newTestResolver(t)
	err := r.AddSources(map[string]source.Source{
		"alias": source.Path("#foo"),
		"pick":  source.Path("#:name"),
	})
	if err != nil {
		t.Fatalf("AddSources: %v", err)
	}

	res, err := r.Load(context.Background(), resolver.IDs("alias", "pick"), source.Params{"name": "bar"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]any{fooRows, barRows}, res.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInterpolatesPaths(t *testing.T) {
	rec := &recorder{}
	r := resolver.New(
		resolver.WithLoader("rec", rec),
		resolver.WithSources(map[string]source.Source{
			"item": source.Path("items/:kind/:id.rec"),
		}),
	)

	res, err := r.Load(context.Background(), resolver.ID("item"), source.Params{"kind": "user", "id": 42})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]string{"items/user/42.rec"}, rec.Names()); diff != "" {
		t.Fatalf("loader calls mismatch (-want +got):\n%s", diff)
	}
	got, _ := res.Get("item")
	if got != "items/user/42.rec" {
		t.Fatalf("unexpected data %v", got)
	}
}

func TestLoadFuncReceivesRawParams(t *testing.T) {
	var seen source.Params
	r := resolver.New(resolver.WithSources(map[string]source.Source{
		"fn": source.Func(func(_ context.Context, params source.Params) (any, error) {
			seen = params
			return map[string]any{"ok": true}, nil
		}),
	}))

	params := source.Params{"id": 7, "flag": true}
	res, err := r.Load(context.Background(), resolver.ID("fn"), params)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(params, seen); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
	got, _ := res.Get("fn")
	if diff := cmp.Diff(map[string]any{"ok": true}, got); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		sources map[string]source.Source
		req     resolver.Request
		params  source.Params
		want    error
	}{
		{
			name:    "unknown source",
			sources: map[string]source.Source{"foo": source.Path("foo.rec")},
			req:     resolver.IDs("foo", "missing"),
			want:    resolver.ErrUnknownSource,
		},
		{
			name:    "missing parameter",
			sources: map[string]source.Source{"item": source.Path(":id.rec")},
			req:     resolver.ID("item"),
			want:    interpolate.ErrMissingParameter,
		},
		{
			name:    "unknown reference",
			sources: map[string]source.Source{"item": source.Path("#nowhere")},
			req:     resolver.ID("item"),
			want:    interpolate.ErrUnknownReference,
		},
		{
			name: "reference cycle",
			sources: map[string]source.Source{
				"a": source.Path("#b"),
				"b": source.Path("#a"),
			},
			req:  resolver.ID("a"),
			want: interpolate.ErrReferenceCycle,
		},
		{
			name:    "no loader",
			sources: map[string]source.Source{"item": source.Path("data.unknown")},
			req:     resolver.ID("item"),
			want:    loaders.ErrNoLoader,
		},
		{
			name:    "invalid kind",
			sources: map[string]source.Source{"item": source.Map{"x": nil}},
			req:     resolver.ID("item"),
			want:    resolver.ErrInvalidSourceKind,
		},
		{
			name: "empty request",
			req:  resolver.Request{},
			want: resolver.ErrEmptyRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			r := resolver.New(
				resolver.WithLoader("rec", rec),
				resolver.WithSources(tt.sources),
			)

			res, err := r.Load(context.Background(), tt.req, tt.params)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if res.Len() != 0 {
				t.Fatalf("expected empty result on error, got %v", res.Map())
			}
			if names := rec.Names(); len(names) != 0 {
				t.Fatalf("no loader should run before validation, got %v", names)
			}
		})
	}
}

func TestLoadReportsFirstFailingEntryInDeclarationOrder(t *testing.T) {
	r := resolver.New(resolver.WithSources(map[string]source.Source{
		"a": source.Path(":first.rec"),
		"b": source.Path("#missing"),
	}))

	_, err := r.Load(context.Background(), resolver.IDs("b", "a"), nil)
	if !errors.Is(err, interpolate.ErrUnknownReference) {
		t.Fatalf("expected unknown reference, got %v", err)
	}
}

func TestLoadPreservesSlotOrder(t *testing.T) {
	fastDone := make(chan struct{})
	r := resolver.New(resolver.WithSources(map[string]source.Source{
		"slow": source.Func(func(ctx context.Context, _ source.Params) (any, error) {
			select {
			case <-fastDone:
				return "slow", nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}),
		"fast": source.Func(func(context.Context, source.Params) (any, error) {
			defer close(fastDone)
			return "fast", nil
		}),
	}))

	res, err := r.Load(context.Background(), resolver.IDs("slow", "fast"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]any{"slow", "fast"}, res.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFirstErrorCancelsSiblings(t *testing.T) {
	boom := errors.New("boom")
	cancelled := make(chan struct{})
	r := resolver.New(resolver.WithSources(map[string]source.Source{
		"blocked": source.Func(func(ctx context.Context, _ source.Params) (any, error) {
			<-ctx.Done()
			close(cancelled)
			return nil, ctx.Err()
		}),
		"broken": source.Func(func(context.Context, source.Params) (any, error) {
			return nil, boom
		}),
	}))

	_, err := r.Load(context.Background(), resolver.IDs("blocked", "broken"), nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	select {
	case <-cancelled:
	default:
		t.Fatalf("sibling was not cancelled")
	}
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	r := newTestResolver(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Load(ctx, resolver.All(), nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoaderOverridesAreInstanceScoped(t *testing.T) {
	rec := &recorder{}
	sources := map[string]source.Source{"item": source.Path("x.rec")}
	withLoader := resolver.New(resolver.WithSources(sources))
	without := resolver.New(resolver.WithSources(sources))

	if err := withLoader.SetLoader("rec", rec); err != nil {
		t.Fatalf("SetLoader: %v", err)
	}
	if _, err := withLoader.Load(context.Background(), resolver.ID("item"), nil); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := without.Load(context.Background(), resolver.ID("item"), nil); !errors.Is(err, loaders.ErrNoLoader) {
		t.Fatalf("expected no loader on the other instance, got %v", err)
	}
}

func TestDefaultLoaderHandlesUnknownExtensions(t *testing.T) {
	rec := &recorder{}
	r := resolver.New(
		resolver.WithDefaultLoader(rec),
		resolver.WithSources(map[string]source.Source{"item": source.Path("notes.weird")}),
	)

	if _, err := r.Load(context.Background(), resolver.ID("item"), nil); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]string{"notes.weird"}, rec.Names()); diff != "" {
		t.Fatalf("loader calls mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromFileSystem(t *testing.T) {
	files := fstest.MapFS{
		"cfg/app.yaml": &fstest.MapFile{Data: []byte("name: festoon\nreplicas: 2\n")},
	}
	r := resolver.New(
		resolver.WithFileSystem(files),
		resolver.WithBasePath("cfg"),
		resolver.WithSources(map[string]source.Source{"app": source.Path("app.yaml")}),
	)

	res, err := r.Load(context.Background(), resolver.ID("app"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, _ := res.Get("app")
	want := map[string]any{"name": "festoon", "replicas": 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestConstructionErrorSurfacesOnLoad(t *testing.T) {
	r := resolver.New(resolver.WithSources(map[string]source.Source{
		" ": source.Path("foo.csv"),
	}))

	if !errors.Is(r.Err(), registry.ErrInvalidID) {
		t.Fatalf("expected invalid id from Err, got %v", r.Err())
	}
	if _, err := r.Load(context.Background(), resolver.All(), nil); !errors.Is(err, registry.ErrInvalidID) {
		t.Fatalf("expected invalid id from Load, got %v", err)
	}
}

func TestResultMarshalJSON(t *testing.T) {
	r := newTestResolver(t)

	res, err := r.Load(context.Background(), resolver.IDs("bar"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	raw, err := res.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if diff := cmp.Diff(`{"bar":[{"a":"3","b":"4"}]}`, string(raw)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}
