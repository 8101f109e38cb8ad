package main

import (
	"fmt"
	"os"

	"github.com/temirov/npm-pack/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main opens the requested package pages and exits non-zero on the first propagated error.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
