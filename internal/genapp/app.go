// internal/genapp/app.go
package genapp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"seqgen/internal/cmdutil"
	"seqgen/internal/progress"
	"seqgen/internal/seqfile"
)

type Options struct {
	Path  string
	Count int64

	// Progress receives a live percentage line when ShowProgress is set.
	Progress     io.Writer
	ShowProgress bool
}

// DefaultOptions wires progress to stderr when stderr is a terminal.
func DefaultOptions(path string, count int64) Options {
	return Options{
		Path:         path,
		Count:        count,
		Progress:     os.Stderr,
		ShowProgress: progress.Detect(os.Stderr),
	}
}

func RunContext(ctx context.Context, stdout, stderr io.Writer, o Options) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	_, _ = fmt.Fprintf(outw, "Generating %d random integers...\n", o.Count)
	_, _ = fmt.Fprintln(outw, "(This may take a while)")
	if err := cmdutil.Flush(outw); err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return 1
	}

	pw := o.Progress
	if pw == nil {
		pw = stderr
	}
	rep := progress.New(pw, "writing "+o.Path, o.Count, o.ShowProgress)
	st, err := seqfile.GenerateWithProgress(ctx, o.Path, o.Count, rep.Update)
	rep.Done()
	if err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		if errors.Is(err, context.Canceled) {
			return 130
		}
		return 1
	}

	_, _ = fmt.Fprintf(outw, "Random numbers generated: %d\n", st.Count)
	_, _ = fmt.Fprintf(outw, "Generated numbers range from: %d to %d\n", st.Min, st.Max)
	_, _ = fmt.Fprintln(outw, "Random number generation completed.")
	_, _ = fmt.Fprintln(outw)
	if err := cmdutil.Flush(outw); err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return 1
	}
	return 0
}

func Run(stdout, stderr io.Writer, o Options) int {
	return RunContext(context.Background(), stdout, stderr, o)
}
