package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/goliatone/go-festoon/pkg/config"
	"github.com/goliatone/go-festoon/pkg/interpolate"
	"github.com/goliatone/go-festoon/pkg/resolver"
	"github.com/goliatone/go-festoon/pkg/source"
	"github.com/goliatone/go-festoon/pkg/watch"
)

var errHelp = errors.New("help requested")

// maxPrompts bounds how many missing parameters one run asks for.
const maxPrompts = 32

type options struct {
	configPath string
	basePath   string
	params     []string
	sources    []string
	prompt     bool
	serve      string
	watch      bool
	http       bool
	pretty     bool
	logLevel   string
	logFormat  string
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	opts := &options{}
	flagSet := pflag.NewFlagSet("festoon", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flagSet.StringVarP(&opts.basePath, "base", "b", "", "base path for relative file sources")
	flagSet.StringArrayVarP(&opts.params, "param", "p", nil, "request parameter as key=value (repeatable)")
	flagSet.StringArrayVarP(&opts.sources, "source", "s", nil, "file source as id=path (repeatable)")
	flagSet.BoolVar(&opts.prompt, "prompt", false, "ask for missing parameters interactively")
	flagSet.StringVar(&opts.serve, "serve", "", "serve the request over HTTP on this address")
	flagSet.BoolVar(&opts.watch, "watch", false, "reload sources when the configuration file changes (with --serve)")
	flagSet.BoolVar(&opts.http, "http", false, "allow http(s) file sources")
	flagSet.BoolVar(&opts.pretty, "pretty", false, "indent JSON output")
	flagSet.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flagSet.StringVar(&opts.logFormat, "log-format", "text", "log format: text, json")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage:\n  festoon [flags] [* | id... | alias=id...]\n\nFlags:\n%s", flagSet.FlagUsages())
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, nil, errHelp
		}
		return nil, nil, err
	}
	return opts, flagSet.Args(), nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, ask prompter) error {
	opts, rest, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := newLogger(opts.logLevel, opts.logFormat, stderr)

	overrides := map[string]any{}
	if opts.basePath != "" {
		overrides["base_path"] = opts.basePath
	}
	if opts.http {
		overrides["http"] = map[string]any{"enabled": true}
	}
	cfg, err := config.Load(opts.configPath, config.WithOverrides(overrides))
	if err != nil {
		return err
	}

	params, err := parsePairs(opts.params, "param")
	if err != nil {
		return err
	}
	extra, err := parsePairs(opts.sources, "source")
	if err != nil {
		return err
	}

	r := resolver.New(append(cfg.Options(), resolver.WithLogger(logger))...)
	if err := r.Err(); err != nil {
		return err
	}
	extraSources := make(map[string]source.Source, len(extra))
	for id, path := range extra {
		extraSources[id] = source.Path(source.FormatScalar(path))
		if err := r.SetSource(id, extraSources[id]); err != nil {
			return err
		}
	}

	req := resolver.ParseRequest(rest)
	if opts.serve != "" {
		if opts.watch && opts.configPath != "" {
			target := withExtras{target: r, extra: extraSources}
			w := watch.New(opts.configPath, target, watch.WithLogger(logger))
			go func() {
				if err := w.Run(ctx); err != nil {
					logger.Error("watcher stopped", "error", err)
				}
			}()
		}
		return serve(ctx, opts.serve, r, req, logger)
	}

	res, err := load(ctx, r, req, params, opts.prompt, ask)
	if err != nil {
		return err
	}
	return writeJSON(stdout, res, opts.pretty)
}

// withExtras keeps --source entries across reloads. They win over file
// sources with the same id, as they do at startup.
type withExtras struct {
	target watch.Target
	extra  map[string]source.Source
}

func (w withExtras) SetSources(sources map[string]source.Source) error {
	merged := make(map[string]source.Source, len(sources)+len(w.extra))
	for id, src := range sources {
		merged[id] = src
	}
	for id, src := range w.extra {
		merged[id] = src
	}
	return w.target.SetSources(merged)
}

// load resolves req, asking for each missing parameter when prompting is on.
// A parameter that is still missing after it was supplied comes from a
// reference target, which never sees request params, so asking again cannot
// help.
func load(ctx context.Context, r *resolver.Resolver, req resolver.Request, params source.Params, prompt bool, ask prompter) (resolver.Result, error) {
	for attempt := 0; ; attempt++ {
		res, err := r.Load(ctx, req, params)
		var missing *interpolate.MissingParameterError
		if err == nil || !prompt || attempt >= maxPrompts || !errors.As(err, &missing) {
			return res, err
		}
		if _, supplied := params[missing.Name]; supplied {
			return resolver.Result{}, err
		}
		value, askErr := ask.Input(ctx, missing.Name)
		if askErr != nil {
			return resolver.Result{}, askErr
		}
		params[missing.Name] = value
	}
}

func parsePairs(pairs []string, flag string) (source.Params, error) {
	out := source.Params{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("--%s %q: expected key=value", flag, pair)
		}
		out[key] = value
	}
	return out, nil
}

func writeJSON(w io.Writer, res resolver.Result, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	var payload any = res
	if res.Positional() {
		payload = res.Values()
	}
	return enc.Encode(payload)
}
