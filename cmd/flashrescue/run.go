package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"
)

type lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Done() <-chan os.Signal
}

var stderr io.Writer = os.Stderr

// run starts app, blocks until ctx is cancelled or fx requests shutdown and
// returns the process exit code.
func run(ctx context.Context, app lifecycle) int {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "failed to start flashrescue: %v\n", err)
		return 1
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(stderr, "failed to stop flashrescue: %v\n", err)
		return 1
	}
	return 0
}

var _ lifecycle = (*fx.App)(nil)
