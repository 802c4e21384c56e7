package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/slocops/handover/internal/model"
	"github.com/slocops/handover/internal/store"
)

func newInventoryCmd(opts *rootOptions) *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Print stock levels from the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			database, err := openDatabase(ctx, opts.cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close()

			var records []model.InventoryRecord
			if location == "" {
				records, err = store.LoadInventory(ctx, database)
			} else {
				loc, perr := model.ParseLocation(location)
				if perr != nil {
					return perr
				}
				records, err = store.LoadInventoryByLocation(ctx, database, loc)
			}
			if err != nil {
				return fmt.Errorf("loading inventory: %w", err)
			}
			return printInventory(cmd.OutOrStdout(), records)
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "only show one SLOC (1000 or 1001)")
	return cmd
}

func printInventory(w io.Writer, records []model.InventoryRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tNAME\tCATEGORY\tSLOC\tQTY\tUNIT\tUPDATED")
	for _, r := range records {
		low := ""
		if r.LowStock() {
			low = " (low)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d%s\t%s\t%s\n",
			r.ItemID, r.Name, r.Category, r.Location, r.Quantity, low, r.Unit, r.LastUpdated.Format("2006-01-02"))
	}
	return tw.Flush()
}
