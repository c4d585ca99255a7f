package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"emrdash/internal/dataprocessing"
)

func newOptionsCmd(flags *globalFlags) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the filter choices for a pending selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			ds, _, err := loadDataset(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			options := dataprocessing.Cascade(ds, sel.selection())
			w := cmd.OutOrStdout()
			printList(w, "States", options.States)
			printList(w, "LGAs", options.LGAs)
			printList(w, "Facilities", options.Facilities)
			return nil
		},
	}
	sel.register(cmd)
	return cmd
}

func printList(w io.Writer, heading string, values []string) {
	fmt.Fprintf(w, "%s (%d)\n", heading, len(values))
	if len(values) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, v := range values {
		fmt.Fprintf(w, "  - %s\n", v)
	}
}
