// Package main provides the CLI for the leaprel relational algebra query language.
package main

import (
	"os"

	"github.com/leapstack-labs/leaprel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
