// Package main provides the entry point for synckit-bench.
//
// synckit-bench drives a configurable producer/consumer workload
// against the synckit collections and reports the outcome.
package main

import (
	"fmt"
	"os"

	"github.com/yndnr/synckit-go/internal/bench/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
