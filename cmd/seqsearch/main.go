// cmd/seqsearch/main.go
package main

import (
	"context"
	"io"

	"seqgen/internal/appshell"
	"seqgen/internal/searchapp"
)

const (
	count     = 200_000_000
	inputPath = "input1.txt"
)

func main() {
	appshell.Main(func(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) int {
		return searchapp.RunContext(ctx, stdin, stdout, stderr, searchapp.Options{Path: inputPath, Count: count})
	})
}
