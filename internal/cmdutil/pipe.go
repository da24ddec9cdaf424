package cmdutil

import (
	"bufio"
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// Flush flushes w, treating a closed downstream pipe as success.
func Flush(w *bufio.Writer) error {
	if err := w.Flush(); err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}
