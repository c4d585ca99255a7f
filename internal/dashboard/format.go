package dashboard

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators, e.g. 1234567 as "1,234,567".
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatPercent renders v with one decimal and a percent sign, e.g. "80.0%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
