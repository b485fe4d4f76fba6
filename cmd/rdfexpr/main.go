// Command rdfexpr evaluates SPARQL filter expressions over a SQLite triple store.
package main

import (
	"os"

	"github.com/roach88/rdfexpr/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
