//go:build windows

package seqfile

// LineEnd is the platform line terminator written after each value.
const LineEnd = "\r\n"
