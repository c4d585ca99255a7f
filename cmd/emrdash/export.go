package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"emrdash/internal/dataprocessing"
	"emrdash/internal/exporter"
)

func newExportCmd(flags *globalFlags) *cobra.Command {
	var (
		sel selectionFlags
		out string
		bom bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered rows as CSV",
		Long:  `Apply the State, LGA and facility filters to the workbook and write the matching rows with every source column. An empty filter keeps every row.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			ds, logger, err := loadDataset(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			subset := dataprocessing.Apply(ds, sel.selection())
			options := exporter.WriteOptions{
				Headers:   ds.Columns,
				Records:   exporter.Rows(ds.Columns, subset),
				BOMPrefix: bom,
			}

			if out == "-" {
				return exporter.Encode(cmd.OutOrStdout(), options)
			}

			path, err := exporter.NewCSVWriter(cfg.Dashboard.ExportDir).WriteCSV(out, options)
			if err != nil {
				return err
			}
			logger.Info("Export written", slog.String("path", path), slog.Int("rows", len(subset)))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(subset), path)
			return nil
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", exporter.ExportFilename, `output file, or "-" for stdout`)
	cmd.Flags().BoolVar(&bom, "bom", false, "prefix the file with a UTF-8 byte order mark")
	return cmd
}
