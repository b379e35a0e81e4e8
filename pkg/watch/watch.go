// Package watch reloads a configuration file's sources into a running
// resolver whenever the file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-festoon/pkg/config"
	"github.com/goliatone/go-festoon/pkg/source"
)

// Target receives reloaded sources. *resolver.Resolver satisfies it.
type Target interface {
	SetSources(sources map[string]source.Source) error
}

// Watcher watches one configuration file.
type Watcher struct {
	path       string
	target     Target
	logger     *slog.Logger
	configOpts []config.Option
	onReload   func(error)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger for the watcher.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithConfigOptions passes options to every config.Load.
func WithConfigOptions(opts ...config.Option) Option {
	return func(w *Watcher) {
		w.configOpts = append(w.configOpts, opts...)
	}
}

// OnReload registers a callback invoked after every reload attempt with its
// outcome.
func OnReload(fn func(error)) Option {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// New creates a watcher for path feeding target.
func New(path string, target Target, opts ...Option) *Watcher {
	w := &Watcher{
		path:   filepath.Clean(path),
		target: target,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w
}

// Reload reads the file and replaces the target's sources. A file that fails
// to load leaves the target untouched.
func (w *Watcher) Reload() error {
	cfg, err := config.Load(w.path, w.configOpts...)
	if err == nil {
		err = w.target.SetSources(cfg.SourceMap())
	}
	if err != nil {
		err = fmt.Errorf("watch: reload %s: %w", w.path, err)
	}
	if w.onReload != nil {
		w.onReload(err)
	}
	return err
}

// Run watches the file until ctx is done. It watches the parent directory so
// editors that replace the file by rename are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		w.logger.Error("failed to watch directory", "path", dir, "error", err)
		return fmt.Errorf("watch: add %s: %w", dir, err)
	}
	w.logger.Debug("watching directory for changes", "path", dir, "file", filepath.Base(w.path))

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("configuration file changed", "file", event.Name, "op", event.Op.String())
			if err := w.Reload(); err != nil {
				w.logger.Error("configuration reload failed", "error", err)
				continue
			}
			w.logger.Info("sources reloaded", "file", w.path)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("configuration watcher error", "error", err)
		case <-ctx.Done():
			return nil
		}
	}
}
