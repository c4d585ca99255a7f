// Command emrdash serves the EMR facility dashboard and offers command line
// access to the same filters, KPIs and CSV export.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
