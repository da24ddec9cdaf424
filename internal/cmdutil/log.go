package cmdutil

import (
	"fmt"
	"io"
)

func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

// Errorf writes a one-line "error: ..." message.
func Errorf(dst io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(dst, "error: "+format+"\n", a...)
}
