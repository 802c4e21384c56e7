package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInsightsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Print advisory insights for the current inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			text := a.advisor.InventoryInsights(cmd.Context(), a.store.List())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}
