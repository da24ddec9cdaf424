package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is an application entry point wired to the process streams.
type RunFunc func(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) int

// Main runs fn under a context cancelled by SIGINT/SIGTERM and exits with
// its code.
func Main(fn RunFunc) {
	os.Exit(run(fn, os.Stdin, os.Stdout, os.Stderr))
}

func run(fn RunFunc, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := fn(ctx, stdin, stdout, stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
