// internal/searchapp/app.go
package searchapp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"seqgen/internal/cmdutil"
	"seqgen/internal/search"
	"seqgen/internal/seqfile"
)

type Options struct {
	Path  string
	Count int // values to load; <= 0 loads the whole file
	Quiet bool
}

// phase times one search strategy and prints its report.
type phase struct {
	title string
	find  func(nums []int32, target int32) int
}

func RunContext(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, o Options) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()
	in := bufio.NewReader(stdin)

	flush := func() bool {
		if err := cmdutil.Flush(outw); err != nil {
			cmdutil.Errorf(stderr, "%v", err)
			return false
		}
		return true
	}

	_, _ = fmt.Fprintln(outw, "Enter value to search for: ")
	if !flush() {
		return 1
	}
	target, err := scanValue[int32](ctx, in)
	if err != nil {
		if ctx.Err() != nil {
			return 130
		}
		cmdutil.Errorf(stderr, "invalid search value: %v", err)
		return 2
	}

	_, _ = fmt.Fprintln(outw, "How many threads to run on: ")
	if !flush() {
		return 1
	}
	threads, err := scanValue[int](ctx, in)
	if err != nil {
		if ctx.Err() != nil {
			return 130
		}
		cmdutil.Errorf(stderr, "invalid thread count: %v", err)
		return 2
	}
	if threads < 1 {
		cmdutil.Warnf(stderr, o.Quiet, "thread count %d is not positive; using 1", threads)
		threads = 1
	}
	if limit := search.MaxSections(); threads > limit {
		cmdutil.Warnf(stderr, o.Quiet, "thread count %d exceeds %d; using %d", threads, limit, limit)
		threads = limit
	}

	_, _ = fmt.Fprintf(outw, "Loading values from %s...\n", o.Path)
	_, _ = fmt.Fprintln(outw, "(This may take a while)")
	if !flush() {
		return 1
	}
	nums, err := seqfile.Load(ctx, o.Path, o.Count)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 130
		}
		cmdutil.Errorf(stderr, "error reading file %s: %v", o.Path, err)
		if errors.Is(err, seqfile.ErrMalformedLine) {
			return 2
		}
		return 1
	}
	_, _ = fmt.Fprintf(outw, "Finished loading %d values\n", len(nums))
	_, _ = fmt.Fprintln(outw)

	phases := []phase{
		{
			title: "Serial work",
			find:  search.Serial,
		},
		{
			title: fmt.Sprintf("Parallel work with %d threads", threads),
			find: func(nums []int32, target int32) int {
				return search.Sectioned(ctx, nums, target, threads)
			},
		},
	}
	if code := runPhases(ctx, outw, phases, nums, target); code != 0 {
		return code
	}

	if !flush() {
		return 1
	}
	return 0
}

// runPhases reports each phase in turn. A phase interrupted by ctx prints no
// result and yields 130.
func runPhases(ctx context.Context, w io.Writer, phases []phase, nums []int32, target int32) int {
	for _, p := range phases {
		if ctx.Err() != nil {
			return 130
		}
		_, _ = fmt.Fprintf(w, "\n****** Now beginning %s ******\n\n", p.title)
		_, _ = fmt.Fprintln(w, "Starting binary search...")

		start := time.Now()
		idx := p.find(nums, target)
		elapsed := time.Since(start)
		if ctx.Err() != nil {
			return 130
		}

		_, _ = fmt.Fprintf(w, "Work took %f seconds\n", elapsed.Seconds())
		if idx != -1 {
			_, _ = fmt.Fprintf(w, "Element %d found! At index %d\n", target, idx)
		} else {
			_, _ = fmt.Fprintf(w, "Element %d not found\n", target)
		}
		_, _ = fmt.Fprintln(w)
	}
	return 0
}

// scanValue reads one whitespace-separated value from in, returning early
// with ctx.Err() on cancellation. An abandoned read finishes in the
// background once in yields data or closes.
func scanValue[T any](ctx context.Context, in io.Reader) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		var v T
		_, err := fmt.Fscan(in, &v)
		ch <- result{v: v, err: err}
	}()
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-ch:
		return r.v, r.err
	}
}

func Run(stdin io.Reader, stdout, stderr io.Writer, o Options) int {
	return RunContext(context.Background(), stdin, stdout, stderr, o)
}
