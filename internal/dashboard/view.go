package dashboard

import (
	"time"

	"emrdash/internal/dataprocessing"
	"emrdash/pkg/contracts/domain"
)

// DefaultPreviewLimit is the number of subset rows shown in the table preview.
const DefaultPreviewLimit = 100

// IdlePrompt is shown until the first selection is applied.
const IdlePrompt = "Select your filters and click 'Apply Filters' to load dashboard."

// KPI keys in display order. The first five form the top row of the page.
const (
	KPITxCurr        = "tx_curr"
	KPITxNew         = "tx_new"
	KPIVlEligible    = "vl_eligible"
	KPIVlCoverage    = "vl_coverage"
	KPIVlSuppression = "vl_suppression"
	KPIPbs           = "pbs"
	KPIPbsRecaptured = "pbs_recaptured"
	KPIIitCases      = "iit_cases"
	KPIFingerprints  = "pbs_ndr_fingerprints"
)

// PrimaryKPICount is how many KPIs go in the first row.
const PrimaryKPICount = 5

// BuildKPIs formats the metrics as display strings.
func BuildKPIs(m domain.ProgramMetrics) []domain.KPI {
	return []domain.KPI{
		{Key: KPITxCurr, Label: "TX_CURR", Value: FormatCount(m.TxCurr)},
		{Key: KPITxNew, Label: "TX_NEW", Value: FormatCount(m.TxNew)},
		{Key: KPIVlEligible, Label: "VL Eligible", Value: FormatCount(m.VlEligible)},
		{Key: KPIVlCoverage, Label: "VL Coverage (%)", Value: FormatPercent(m.VlCoverage)},
		{Key: KPIVlSuppression, Label: "VL Suppression (%)", Value: FormatPercent(m.VlSuppression)},
		{Key: KPIPbs, Label: "PBS Enrolled", Value: FormatCount(m.Pbs)},
		{Key: KPIPbsRecaptured, Label: "PBS Recaptured", Value: FormatCount(m.PbsRecaptured)},
		{Key: KPIIitCases, Label: "IIT Cases", Value: FormatCount(m.IitCases)},
		{Key: KPIFingerprints, Label: "Fingerprint Enrolled", Value: FormatCount(m.PbsNdrFingerprints)},
	}
}

// BuildCharts returns the three chart series for the metrics.
func BuildCharts(m domain.ProgramMetrics) []domain.ChartSeries {
	txCurr := domain.ChartSeries{
		ID:     domain.ChartTxCurrByFacility,
		Title:  "TX_CURR Distribution",
		XLabel: domain.ColumnFacilityName,
		YLabel: domain.ColumnTxCurr,
		Bars:   make([]domain.Bar, len(m.TxCurrByFacility)),
	}
	for i, f := range m.TxCurrByFacility {
		txCurr.Bars[i] = domain.Bar{Label: f.FacilityName, Value: float64(f.TxCurr)}
	}

	return []domain.ChartSeries{
		txCurr,
		ratioSeries(domain.ChartVlSuppressionByLGA, "VL Suppression by LGA", "VL Suppression (%)", m.SuppressionByLGA),
		ratioSeries(domain.ChartVlCoverageByLGA, "VL Coverage by LGA", "VL Coverage (%)", m.CoverageByLGA),
	}
}

func ratioSeries(id, title, yLabel string, groups []domain.LGARatio) domain.ChartSeries {
	s := domain.ChartSeries{
		ID:     id,
		Title:  title,
		XLabel: domain.ColumnLGA,
		YLabel: yLabel,
		Bars:   make([]domain.Bar, len(groups)),
	}
	for i, g := range groups {
		s.Bars[i] = domain.Bar{Label: g.LGA, Value: g.Percent}
	}
	return s
}

// BuildPreview returns the first limit rows of the subset with every source
// column. A non-positive limit uses DefaultPreviewLimit.
func BuildPreview(columns []string, subset []domain.FacilityRecord, limit int) domain.TablePreview {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	n := min(len(subset), limit)

	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(columns))
		if subset[i].Cells != nil {
			copy(row, subset[i].Cells)
		} else {
			for j, col := range columns {
				row[j] = subset[i].Value(col)
			}
		}
		rows[i] = row
	}

	return domain.TablePreview{
		Columns:   columns,
		Rows:      rows,
		TotalRows: len(subset),
		Truncated: len(subset) > n,
	}
}

// BuildView filters ds by sel and assembles everything the dashboard shows.
func BuildView(ds *domain.Dataset, sel domain.Selection, previewLimit int, now time.Time) *domain.DashboardView {
	subset := dataprocessing.Apply(ds, sel)
	metrics := dataprocessing.Aggregate(subset)

	var columns []string
	if ds != nil {
		columns = ds.Columns
	}

	return &domain.DashboardView{
		Selection: sel,
		Metrics:   metrics,
		KPIs:      BuildKPIs(metrics),
		Charts:    BuildCharts(metrics),
		Preview:   BuildPreview(columns, subset, previewLimit),
		AppliedAt: now,
	}
}
