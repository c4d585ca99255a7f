package domain

import "time"

// DashboardStatus is the UI-level state of the dashboard.
type DashboardStatus string

const (
	DashboardIdle     DashboardStatus = "idle"
	DashboardRendered DashboardStatus = "rendered"
)

// Chart identifiers used in URLs and websocket payloads.
const (
	ChartTxCurrByFacility   = "tx-curr-by-facility"
	ChartVlSuppressionByLGA = "vl-suppression-by-lga"
	ChartVlCoverageByLGA    = "vl-coverage-by-lga"
)

// KPI is one display-ready indicator.
type KPI struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Bar is a single bar of a chart series.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is the data behind one bar chart.
type ChartSeries struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	Bars   []Bar  `json:"bars"`
}

// TablePreview is a bounded slice of the filtered subset.
type TablePreview struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"total_rows"`
	Truncated bool       `json:"truncated"`
}

// DashboardView is everything the dashboard shows for one applied selection.
type DashboardView struct {
	Selection Selection      `json:"selection"`
	Metrics   ProgramMetrics `json:"metrics"`
	KPIs      []KPI          `json:"kpis"`
	Charts    []ChartSeries  `json:"charts"`
	Preview   TablePreview   `json:"preview"`
	AppliedAt time.Time      `json:"applied_at"`
}

// Chart returns the series with the given id.
func (v *DashboardView) Chart(id string) (ChartSeries, bool) {
	for _, c := range v.Charts {
		if c.ID == id {
			return c, true
		}
	}
	return ChartSeries{}, false
}

// DashboardState is the snapshot returned by the view endpoint.
type DashboardState struct {
	Status  DashboardStatus `json:"status"`
	Message string          `json:"message,omitempty"`
	View    *DashboardView  `json:"view,omitempty"`
}
