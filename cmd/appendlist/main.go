package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
)

func main() {
	// where are we?
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	log, err := do(context.Background(), cwd, os.Args, os.Stdout)
	if diags, ok := err.(hcl.Diagnostics); ok {
		log.WriteDiagnostics(diags)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	os.Exit(exitCode(err))
}

func do(ctx context.Context, cwd string, args []string, out io.Writer) (hcl.DiagnosticWriter, error) {
	// create a parser
	parser := hclparse.NewParser()
	// logger for diagnostics
	log := hcl.NewDiagnosticTextWriter(out, parser.Files(), 78, true)

	err := App(cwd, parser, out).RunContext(ctx, args)
	if err != nil {
		return log, err
	}

	return log, nil
}

// exitCode is 0 on success, 2 for configuration diagnostics and 3 for any
// other error.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	if _, ok := err.(hcl.Diagnostics); ok {
		return 2
	}

	return 3
}
