// Package command provides CLI command definitions for synckit-bench.
package command

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"
)

// ConfigCommand groups the configuration inspection subcommands.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration inspection",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration as JSON",
				Action: configShow,
			},
			{
				Name:   "validate",
				Usage:  "Validate the configuration",
				Action: configValidate,
			},
		},
	}
}

// configShow prints the merged configuration: defaults, file,
// environment.
func configShow(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	fmt.Println(string(data))
	return nil
}

func configValidate(c *cli.Context) error {
	if _, err := loadConfig(c); err != nil {
		PrintError("Validation failed: %v", err)
		return fmt.Errorf("configuration invalid")
	}

	if path := c.String("config"); path != "" {
		fmt.Printf("✓ Configuration is valid: %s\n", path)
	} else {
		fmt.Println("✓ Configuration is valid (defaults and environment).")
	}
	return nil
}
