package seqfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func TestLoad_GeneratedRoundTrip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "input1.txt")
	if _, err := Generate(context.Background(), fn, 1000); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	nums, err := Load(context.Background(), fn, 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(nums) != 1000 {
		t.Fatalf("got %d values", len(nums))
	}
	for i, v := range nums {
		if int(v) != i {
			t.Fatalf("nums[%d] = %d", i, v)
		}
	}
}

func TestLoad_Limit(t *testing.T) {
	fn := writeFile(t, "0\n1\n2\n3\n")
	nums, err := Load(context.Background(), fn, 2)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(nums) != 2 || nums[0] != 0 || nums[1] != 1 {
		t.Fatalf("unexpected %v", nums)
	}
}

func TestLoad_ShortFile(t *testing.T) {
	fn := writeFile(t, "0\n1\n")
	_, err := Load(context.Background(), fn, 5)
	if !errors.Is(err, ErrShortFile) {
		t.Fatalf("want ErrShortFile, got %v", err)
	}
}

func TestLoad_TolerantFormats(t *testing.T) {
	fn := writeFile(t, "7,\r\n\n-3\n+4\n 12 \n99")
	nums, err := Load(context.Background(), fn, 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []int32{7, -3, 4, 12, 99}
	if len(nums) != len(want) {
		t.Fatalf("got %v, want %v", nums, want)
	}
	for i := range want {
		if nums[i] != want[i] {
			t.Fatalf("got %v, want %v", nums, want)
		}
	}
}

func TestLoad_Malformed(t *testing.T) {
	for _, data := range []string{"0\nabc\n", "1\n2147483648\n", "-\n"} {
		fn := writeFile(t, data)
		if _, err := Load(context.Background(), fn, 0); !errors.Is(err, ErrMalformedLine) {
			t.Fatalf("%q: want ErrMalformedLine, got %v", data, err)
		}
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), 0)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want os.ErrNotExist, got %v", err)
	}
}

func TestLoad_Empty(t *testing.T) {
	nums, err := Load(context.Background(), writeFile(t, ""), 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(nums) != 0 {
		t.Fatalf("expected no values, got %v", nums)
	}
}

func TestVerify(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "input1.txt")
	if _, err := Generate(context.Background(), fn, 2048); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := Verify(fn, 2048); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := Verify(fn, 2047); !errors.Is(err, ErrMismatch) {
		t.Fatalf("want size ErrMismatch, got %v", err)
	}
}

func TestVerify_ContentMismatch(t *testing.T) {
	// same size as the canonical 3-line file, different content
	fn := writeFile(t, "0\n2\n1\n")
	if err := Verify(fn, 3); !errors.Is(err, ErrMismatch) {
		t.Fatalf("want ErrMismatch, got %v", err)
	}
}

func TestVerify_Zero(t *testing.T) {
	if err := Verify(writeFile(t, ""), 0); err != nil {
		t.Fatalf("Verify empty: %v", err)
	}
}

func TestParseInt32(t *testing.T) {
	cases := []struct {
		in string
		v  int32
		ok bool
	}{
		{"0", 0, true},
		{"2147483647", 2147483647, true},
		{"-2147483648", -2147483648, true},
		{"2147483648", 0, false},
		{"", 0, false},
		{"+", 0, false},
		{"1e3", 0, false},
	}
	for _, c := range cases {
		v, ok := parseInt32([]byte(c.in))
		if ok != c.ok || (ok && v != c.v) {
			t.Fatalf("parseInt32(%q) = %d,%v want %d,%v", c.in, v, ok, c.v, c.ok)
		}
	}
}

func TestLoad_CancelledBeforeStart(t *testing.T) {
	fn := writeFile(t, "0\n1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, fn, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

type cancelAt struct {
	context.Context
	after int
	calls int
}

func (c *cancelAt) Err() error {
	c.calls++
	if c.calls > c.after {
		return context.Canceled
	}
	return nil
}

func TestLoad_CancelledMidFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "input1.txt")
	if _, err := Generate(context.Background(), fn, 3*blockLines); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// first check passes, the one at the first block boundary fails
	ctx := &cancelAt{Context: context.Background(), after: 1}
	_, err := Load(ctx, fn, 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
