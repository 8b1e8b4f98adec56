/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/basket/pkg/catalog"
	"github.com/mchmarny/basket/pkg/defaults"
	"github.com/mchmarny/basket/pkg/recommendation"
)

func productsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "products",
		EnableShellCompletion: true,
		Usage:                 "List products of a transaction dataset",
		Description: `List the distinct products of a transaction dataset, optionally filtered
by a case-insensitive name prefix. Use it to find the exact names to pass to
recommend.

Example:
  basket products --data cleaned_data.csv --prefix "white" --limit 10`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "transaction dataset path or HTTP/HTTPS URL (CSV)",
				Sources:  cli.EnvVars("BASKET_PRODUCTS"),
				Required: true,
			},
			columnFlag(),
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "only list products starting with this prefix",
			},
			&cli.IntFlag{
				Name:  "limit",
				Value: defaults.ProductSearchLimit,
				Usage: "maximum number of products listed, 0 for all",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			limit := cmd.Int("limit")
			if limit < 0 {
				return fmt.Errorf("limit cannot be negative: %d", limit)
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLICommandTimeout)
			defer cancel()

			cat, err := catalog.Load(ctx, cmd.String("data"), cmd.String("column"))
			if err != nil {
				return fmt.Errorf("failed to load products: %w", err)
			}

			return writeOutput(ctx, cmd, recommendation.NewProductsResponse(cat, cmd.String("prefix"), limit, version))
		},
	}
}
