// Package dashboard turns a filtered facility subset into what the user
// sees: formatted KPI strings, bar chart series and PNGs, a bounded table
// preview, and the Idle/Rendered session state that gates them.
//
// A Session starts Idle. Apply computes a complete DashboardView for the
// selection outside the lock and swaps it in, so readers observe either the
// previous view or the new one, never a mix.
package dashboard
