package watch_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-festoon/pkg/resolver"
	"github.com/goliatone/go-festoon/pkg/source"
	"github.com/goliatone/go-festoon/pkg/testsupport"
	"github.com/goliatone/go-festoon/pkg/watch"
)

var quiet = slog.New(slog.DiscardHandler)

type failingTarget struct{}

func (failingTarget) SetSources(map[string]source.Source) error {
	return errors.New("rejected")
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestReloadReplacesSources(t *testing.T) {
	root := testsupport.WriteTree(t, map[string]string{
		"festoon.yaml": "sources:\n  a: a.json\n  b: b.json\n",
	})
	path := filepath.Join(root, "festoon.yaml")

	r := resolver.New()
	w := watch.New(path, r, watch.WithLogger(quiet))
	require.NoError(t, w.Reload())
	require.Equal(t, []string{"a", "b"}, r.IDs())

	writeConfig(t, path, "sources:\n  c: c.json\n")
	require.NoError(t, w.Reload())
	require.Equal(t, []string{"c"}, r.IDs())
}

func TestReloadKeepsSourcesOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "festoon.yaml")
	writeConfig(t, path, "sources:\n  a: a.json\n")

	r := resolver.New()
	w := watch.New(path, r, watch.WithLogger(quiet))
	require.NoError(t, w.Reload())

	writeConfig(t, path, "sources:\n  a: 42\n")
	require.Error(t, w.Reload())
	require.Equal(t, []string{"a"}, r.IDs())
}

func TestReloadReportsTargetErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "festoon.yaml")
	writeConfig(t, path, "sources:\n  a: a.json\n")

	var reported error
	w := watch.New(path, failingTarget{}, watch.WithLogger(quiet), watch.OnReload(func(err error) {
		reported = err
	}))
	require.Error(t, w.Reload())
	require.Error(t, reported)
}

func TestRunReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "festoon.yaml")
	writeConfig(t, path, "sources:\n  a: a.json\n")

	r := resolver.New()
	var (
		mu      sync.Mutex
		reloads int
	)
	w := watch.New(path, r, watch.WithLogger(quiet), watch.OnReload(func(err error) {
		if err == nil {
			mu.Lock()
			reloads++
			mu.Unlock()
		}
	}))
	require.NoError(t, w.Reload())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Rewrite until the watcher has picked up a change; the first write may
	// land before the directory watch is registered.
	require.Eventually(t, func() bool {
		writeConfig(t, path, "sources:\n  fresh: fresh.json\n")
		return r.Has("fresh")
	}, 5*time.Second, 50*time.Millisecond)

	require.False(t, r.Has("a"))
	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, reloads, 2)
}
