package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"foodsearch/internal/app"
	"foodsearch/internal/catalog"
	"foodsearch/internal/domain"
	"foodsearch/internal/ui/views"
)

func newFetchCmd(c *cli) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "fetch <text>",
		Short: "Run one search and print the items",
		Long: `Run exactly one request against the search API and print what it
returns. Unlike stream, no debouncing or length check is applied.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			items, err := app.NewFetcher(c.cfg).Fetch(context.Background(), text)
			if err != nil {
				return fmt.Errorf("%s: %w", c.catalog.Text(catalog.MessageError), err)
			}

			w := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(itemsJSON(items))
			}

			if len(items) == 0 {
				fmt.Fprintln(w, c.catalog.Text(catalog.MessageNoResult))
				return nil
			}
			for i, item := range items {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprint(w, views.RenderDetails(item))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print items as JSON")
	return cmd
}

// itemJSON flattens an item back into one object
func itemJSON(item domain.FoodItem) map[string]any {
	out := make(map[string]any, len(item.Fields)+1)
	for k, v := range item.Fields {
		out[k] = v
	}
	out["name"] = item.Name
	return out
}

func itemsJSON(items []domain.FoodItem) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, itemJSON(item))
	}
	return out
}
