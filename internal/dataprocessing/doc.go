// Package dataprocessing turns the EMR concordance workbook into an in-memory
// dataset and provides the pure filtering and aggregation steps the dashboard
// runs on every "apply".
//
// # Architecture
//
// The package is organized into three components:
//
//  1. Parser and Loader: read the configured sheet with excelize, map the
//     required headers, drop rows without a facility name and cache the
//     result for the life of the process
//  2. Filter: cascade State → LGA → Facility option lists and apply the
//     conjunctive selection filter
//  3. Analytics: sum the program indicators and derive coverage and
//     suppression ratios, both overall and per group
//
// # Usage
//
//	loader := dataprocessing.NewLoader("EMR_NDR CONC_120725.xlsx", "Conc", logger)
//	ds, err := loader.Load(ctx)
//	if err != nil {
//	    return err
//	}
//
//	sel := domain.Selection{States: []string{"Ogun"}}
//	options := dataprocessing.Cascade(ds, sel)
//	subset := dataprocessing.Apply(ds, sel)
//	metrics := dataprocessing.Aggregate(subset)
//
// # Data Flow
//
//	Excel Sheet → Parser → Dataset → Filter(Selection) → Subset → Analytics → ProgramMetrics
//
// # Error Handling
//
// Load failures are classified with sentinel errors so callers can show a
// static message instead of crashing:
//
//   - ErrSourceNotFound when the workbook does not exist
//   - ErrSheetNotFound when the named sheet is absent
//   - ErrMissingColumn (via *MissingColumnError) when required headers are absent
//
// An empty filtered subset is never an error. Every ratio with a zero
// denominator is reported as 0.
package dataprocessing
