// Package progress draws a single self-overwriting percentage line for long
// generation runs. It only draws on terminals so piped output stays exact.
package progress

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Detect reports whether f is attached to a terminal.
func Detect(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Reporter prints "\rlabel: NN%" whenever the whole percentage changes.
type Reporter struct {
	w           io.Writer
	label       string
	total       int64
	interactive bool
	last        int
}

// New returns a Reporter for total units. A non-interactive Reporter is a
// no-op.
func New(w io.Writer, label string, total int64, interactive bool) *Reporter {
	return &Reporter{w: w, label: label, total: total, interactive: interactive, last: -1}
}

// Update records done units.
func (r *Reporter) Update(done int64) {
	if r == nil || !r.interactive || r.total <= 0 {
		return
	}
	if done > r.total {
		done = r.total
	}
	pct := int(done * 100 / r.total)
	if pct == r.last {
		return
	}
	r.last = pct
	_, _ = fmt.Fprintf(r.w, "\r%s: %3d%%", r.label, pct)
}

// Done ends the progress line if anything was drawn.
func (r *Reporter) Done() {
	if r == nil || !r.interactive || r.last < 0 {
		return
	}
	_, _ = fmt.Fprintln(r.w)
}
