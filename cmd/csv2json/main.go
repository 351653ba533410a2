// Package main provides the CLI entrypoint for csv2json.
//
// csv2json is a conversion tool that:
//   - Reads CSV and Excel exports
//   - Types columns from a schema file
//   - Nests dotted column names and merges parallel lists
//   - Writes {root: [documents...]} JSON
//   - Suggests column mappings for inputs with unfamiliar headers
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"csv2json/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
