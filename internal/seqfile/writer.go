package seqfile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
)

// blockLines is how many lines are written between context checks and
// progress callbacks.
const blockLines = 1 << 16

const writeBufSize = 1 << 20

// Stats summarizes a finished generation run.
type Stats struct {
	Count int64 // lines written
	Bytes int64 // bytes written
	Min   int64 // lower bound of the reported range
	Max   int64 // upper bound of the reported range (equals Count)
}

// ProgressFunc receives the number of lines written so far.
type ProgressFunc func(done int64)

// WriteSequence writes the lines 0..n-1 to w, each ended by LineEnd, and
// returns the number of bytes written. ctx is checked between blocks;
// onProgress may be nil.
func WriteSequence(ctx context.Context, w io.Writer, n int64, onProgress ProgressFunc) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("seqfile: negative count %d", n)
	}
	var (
		written int64
		line    = make([]byte, 0, 24)
	)
	for i := int64(0); i < n; i++ {
		if i%blockLines == 0 {
			if err := ctx.Err(); err != nil {
				return written, err
			}
			if onProgress != nil && i > 0 {
				onProgress(i)
			}
		}
		line = strconv.AppendInt(line[:0], i, 10)
		line = append(line, LineEnd...)
		m, err := w.Write(line)
		written += int64(m)
		if err != nil {
			return written, fmt.Errorf("write line %d: %w", i, err)
		}
	}
	if onProgress != nil {
		onProgress(n)
	}
	return written, nil
}

// Generate creates or truncates path and fills it with n sequential lines.
// The file is closed on every path; a close error is returned when nothing
// failed earlier.
func Generate(ctx context.Context, path string, n int64) (Stats, error) {
	return GenerateWithProgress(ctx, path, n, nil)
}

// GenerateWithProgress is Generate with a progress callback.
func GenerateWithProgress(ctx context.Context, path string, n int64, onProgress ProgressFunc) (st Stats, err error) {
	if n < 0 {
		return Stats{}, fmt.Errorf("seqfile: negative count %d", n)
	}
	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return Stats{}, err
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriterSize(fh, writeBufSize)
	nb, err := WriteSequence(ctx, bw, n, onProgress)
	if err != nil {
		return Stats{}, fmt.Errorf("generate %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return Stats{}, fmt.Errorf("flush %s: %w", path, err)
	}
	return Stats{Count: n, Bytes: nb, Min: 0, Max: n}, nil
}

// ExpectedSize returns the byte size of a sequence file holding n lines.
func ExpectedSize(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var (
		total int64
		lo    int64 = 0
		hi    int64 = 10 // exclusive upper bound of numbers with `digits` digits
	)
	for digits := int64(1); lo < n; digits++ {
		top := hi
		if top > n {
			top = n
		}
		total += (top - lo) * (digits + int64(len(LineEnd)))
		lo, hi = hi, hi*10
	}
	return total
}
