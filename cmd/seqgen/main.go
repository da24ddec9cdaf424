// cmd/seqgen/main.go
package main

import (
	"context"
	"io"

	"seqgen/internal/appshell"
	"seqgen/internal/genapp"
)

const (
	count      = 200_000_000
	outputPath = "input1.txt"
)

func main() {
	appshell.Main(func(ctx context.Context, _ io.Reader, stdout, stderr io.Writer) int {
		return genapp.RunContext(ctx, stdout, stderr, genapp.DefaultOptions(outputPath, count))
	})
}
