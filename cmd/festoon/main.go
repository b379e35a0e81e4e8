// festoon resolves named data sources to JSON.
//
// Sources come from a YAML configuration file and --source flags. Positional
// arguments select what to resolve: nothing or "*" for every source, a single
// id, several ids for a positional list, or alias=id pairs for a keyed
// object. With --serve the same request is exposed over HTTP instead.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, surveyPrompter{}); err != nil {
		if errors.Is(err, errHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
