/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/basket/pkg/catalog"
	"github.com/mchmarny/basket/pkg/defaults"
	"github.com/mchmarny/basket/pkg/recommendation"
	"github.com/mchmarny/basket/pkg/recommender"
	"github.com/mchmarny/basket/pkg/rules"
)

var errEmptyBasket = errors.New("at least one item is required")

func rulesFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "rules",
		Aliases:  []string{"r"},
		Usage:    "rule table path or HTTP/HTTPS URL (CSV, JSON, YAML or TOML)",
		Sources:  cli.EnvVars("BASKET_RULES"),
		Required: true,
	}
}

func columnFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "column",
		Value: defaults.ProductColumn,
		Usage: "product name column of the transaction dataset",
	}
}

func recommendCmd() *cli.Command {
	return &cli.Command{
		Name:                  "recommend",
		Aliases:               []string{"rec"},
		EnableShellCompletion: true,
		Usage:                 "Recommend products for a basket",
		Description: `Recommend products that complement the items in a basket.

Rules whose antecedents share an item with the basket and whose confidence is
at least --min-confidence are evaluated first. When none match, the strongest
rules by lift are used instead and the result is marked as a fallback.

Examples:
  basket recommend --rules association_rules.csv --item "WHITE METAL LANTERN"
  basket recommend --rules rules.yaml --items "bread,milk" --top-n 3 --format json`,
		Flags: []cli.Flag{
			rulesFlag(),
			&cli.StringSliceFlag{
				Name:    "item",
				Aliases: []string{"i"},
				Usage:   "basket item (can be repeated)",
			},
			&cli.StringFlag{
				Name:  "items",
				Usage: "comma separated basket items",
			},
			&cli.FloatFlag{
				Name:  "min-confidence",
				Value: defaults.MinConfidence,
				Usage: "minimum rule confidence, between 0 and 1",
			},
			&cli.IntFlag{
				Name:    "top-n",
				Aliases: []string{"n"},
				Value:   defaults.TopN,
				Usage:   fmt.Sprintf("maximum number of recommendations, between 1 and %d", defaults.MaxTopN),
			},
			&cli.StringFlag{
				Name:  "products",
				Usage: "transaction dataset path or URL, used to flag unknown basket items",
			},
			columnFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			q := buildQueryFromCmd(cmd)
			if recommender.NewItemSet(q.Items...).Len() == 0 {
				return errEmptyBasket
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLICommandTimeout)
			defer cancel()

			table, err := rules.Load(ctx, cmd.String("rules"))
			if err != nil {
				return fmt.Errorf("failed to load rules: %w", err)
			}

			opts := []recommendation.Option{
				recommendation.WithRules(recommendation.StaticRules(table)),
				recommendation.WithVersion(version),
			}

			if products := cmd.String("products"); products != "" {
				cat, err := catalog.Load(ctx, products, cmd.String("column"))
				if err != nil {
					return fmt.Errorf("failed to load products: %w", err)
				}
				opts = append(opts, recommendation.WithCatalog(recommendation.StaticCatalog(cat)))
			}

			resp, err := recommendation.NewBuilder(opts...).Build(ctx, q)
			if err != nil {
				return fmt.Errorf("error building recommendations: %w", err)
			}

			return writeOutput(ctx, cmd, resp)
		},
	}
}

// buildQueryFromCmd collects repeated --item values and the comma separated
// --items list into a query.
func buildQueryFromCmd(cmd *cli.Command) *recommendation.Query {
	items := append([]string{}, cmd.StringSlice("item")...)
	if list := cmd.String("items"); list != "" {
		items = append(items, strings.Split(list, ",")...)
	}

	q := recommendation.NewQuery(items...)
	q.MinConfidence = cmd.Float("min-confidence")
	q.TopN = cmd.Int("top-n")
	return q
}
