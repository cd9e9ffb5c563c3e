// Package command provides CLI command definitions for synckit-bench.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/synckit-go/internal/infra/buildinfo"
)

// App assembles the synckit-bench CLI with its commands and flags.
func App() *cli.App {
	return &cli.App{
		Name:    "synckit-bench",
		Usage:   "Producer/consumer workload driver for the synckit collections",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			RunCommand(),
			ConfigCommand(),
		},
	}
}

// globalFlags apply to every subcommand.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			EnvVars: []string{"SYNCKIT_CONFIG"},
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
	}
}

// PrintError writes a formatted "error:" line to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
