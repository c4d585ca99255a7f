// Package exporter writes filtered facility subsets as CSV.
//
// EncodeCSV produces the bytes served by the dashboard download: the full
// column set of the source sheet, one line per record, in subset order. No
// index column is added and no UTF-8 BOM is written unless asked for, so
// exporting the same subset twice yields identical bytes.
//
// CSVWriter writes the same encoding to disk for the command line export:
//
//	w := exporter.NewCSVWriter("/path/to/exports")
//	err := w.WriteCSV(exporter.ExportFilename, exporter.WriteOptions{
//		Headers: ds.Columns,
//		Records: exporter.Rows(ds.Columns, subset),
//	})
package exporter
