/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/basket/pkg/defaults"
	"github.com/mchmarny/basket/pkg/rules"
)

func rulesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "rules",
		EnableShellCompletion: true,
		Usage:                 "Summarize a rule table",
		Description: `Load a rule table and print its size, item counts and score ranges.
Use it to check a rule file before serving it.`,
		Flags: []cli.Flag{
			rulesFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLICommandTimeout)
			defer cancel()

			table, err := rules.Load(ctx, cmd.String("rules"))
			if err != nil {
				return fmt.Errorf("failed to load rules: %w", err)
			}

			return writeOutput(ctx, cmd, table.Summary())
		},
	}
}
