package seqfile

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/exp/mmap"
)

var (
	// ErrMalformedLine marks a line that is not a decimal integer.
	ErrMalformedLine = errors.New("malformed line")
	// ErrShortFile marks a file holding fewer values than requested.
	ErrShortFile = errors.New("file has fewer values than requested")
	// ErrMismatch marks a file that differs from the canonical sequence.
	ErrMismatch = errors.New("sequence mismatch")
)

const readBufSize = 1 << 20

// lineScanner walks the lines of a memory-mapped file.
type lineScanner struct {
	br   *bufio.Reader
	line int64 // 1-based number of the last line returned
}

func newLineScanner(r *mmap.ReaderAt) *lineScanner {
	sr := io.NewSectionReader(r, 0, int64(r.Len()))
	return &lineScanner{br: bufio.NewReaderSize(sr, readBufSize)}
}

// next returns the next line without its terminator. The slice is only valid
// until the following call.
func (s *lineScanner) next() ([]byte, error) {
	b, err := s.br.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		return nil, fmt.Errorf("%w: line %d exceeds %d bytes", ErrMalformedLine, s.line+1, readBufSize)
	}
	if err == io.EOF && len(b) == 0 {
		return nil, io.EOF
	}
	if err != nil && err != io.EOF {
		return nil, err
	}
	s.line++
	b = bytes.TrimSuffix(b, []byte{'\n'})
	b = bytes.TrimSuffix(b, []byte{'\r'})
	return b, nil
}

// Load memory-maps path and parses up to limit values (limit <= 0 reads
// every line). Blank lines are skipped and a trailing ',' on a value is
// accepted. ctx is checked between blocks of lines.
func Load(ctx context.Context, path string, limit int) ([]int32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	capHint := limit
	if capHint <= 0 {
		capHint = r.Len() / 8
	}
	nums := make([]int32, 0, capHint)

	sc := newLineScanner(r)
	for limit <= 0 || len(nums) < limit {
		if sc.line%blockLines == 0 && sc.line > 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
		b, err := sc.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		b = bytes.TrimSpace(bytes.TrimSuffix(bytes.TrimSpace(b), []byte{','}))
		if len(b) == 0 {
			continue
		}
		v, ok := parseInt32(b)
		if !ok {
			return nil, fmt.Errorf("load %s: %w: line %d: %q", path, ErrMalformedLine, sc.line, b)
		}
		nums = append(nums, v)
	}
	if limit > 0 && len(nums) < limit {
		return nil, fmt.Errorf("load %s: %w: got %d, want %d", path, ErrShortFile, len(nums), limit)
	}
	return nums, nil
}

// Verify reports whether path holds exactly the lines 0..n-1.
func Verify(path string, n int64) error {
	r, err := mmap.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	if got, want := int64(r.Len()), ExpectedSize(n); got != want {
		return fmt.Errorf("verify %s: %w: size %d, want %d", path, ErrMismatch, got, want)
	}

	sc := newLineScanner(r)
	want := make([]byte, 0, 24)
	for i := int64(0); i < n; i++ {
		b, err := sc.next()
		if err == io.EOF {
			return fmt.Errorf("verify %s: %w: got %d lines, want %d", path, ErrShortFile, i, n)
		}
		if err != nil {
			return fmt.Errorf("verify %s: %w", path, err)
		}
		want = strconv.AppendInt(want[:0], i, 10)
		if !bytes.Equal(b, want) {
			return fmt.Errorf("verify %s: %w: line %d is %q, want %q", path, ErrMismatch, sc.line, b, want)
		}
	}
	return nil
}

// parseInt32 parses an optionally signed decimal without allocating.
func parseInt32(b []byte) (int32, bool) {
	neg := false
	switch {
	case len(b) == 0:
		return 0, false
	case b[0] == '-':
		neg = true
		b = b[1:]
	case b[0] == '+':
		b = b[1:]
	}
	if len(b) == 0 {
		return 0, false
	}
	var v int64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int64(c-'0')
		if v > math.MaxInt32+1 {
			return 0, false
		}
	}
	if neg {
		v = -v
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, false
	}
	return int32(v), true
}
