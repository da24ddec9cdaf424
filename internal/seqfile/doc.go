// Package seqfile writes and reads sequence files: plain text files holding
// the decimal integers 0..N-1, one per line, in increasing order.
//
// Design:
//   • Writing is a single forward pass through a buffered writer.
//   • Reading memory-maps the file and parses it without per-line allocations.
//   • Verify checks a file against the canonical layout for a given N.
package seqfile
