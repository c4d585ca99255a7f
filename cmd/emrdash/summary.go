package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"emrdash/internal/dashboard"
	"emrdash/internal/dataprocessing"
)

func newSummaryCmd(flags *globalFlags) *cobra.Command {
	var (
		sel    selectionFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the KPIs for a selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			ds, _, err := loadDataset(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			metrics := dataprocessing.Aggregate(dataprocessing.Apply(ds, sel.selection()))
			kpis := dashboard.BuildKPIs(metrics)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(kpis)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, kpi := range kpis {
				fmt.Fprintf(tw, "%s\t%s\n", kpi.Label, kpi.Value)
			}
			fmt.Fprintf(tw, "Rows\t%d\n", metrics.RowCount)
			fmt.Fprintf(tw, "Facilities\t%d\n", metrics.FacilityCount)
			return tw.Flush()
		},
	}
	sel.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the KPIs as JSON")
	return cmd
}
