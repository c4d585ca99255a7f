package domain

import "strconv"

// Source column headers as they appear in the EMR concordance workbook.
const (
	ColumnState              = "State"
	ColumnLGA                = "LGA"
	ColumnFacilityName       = "FacilityName"
	ColumnTxCurr             = "TX_Curr_EMR"
	ColumnTxNew              = "TX_New_EMR"
	ColumnVlEligible         = "VL Eligible EMR"
	ColumnTxPvlsD            = "TX_PVLS_D_EMR"
	ColumnTxPvlsN            = "TX_PVLS_N_EMR"
	ColumnPbs                = "PBS_EMR"
	ColumnPbsRecaptured      = "PBS Recaptured_EMR"
	ColumnIitCases           = "IIT Quarter"
	ColumnPbsNdrFingerprints = "PBS_NDR"
)

// RequiredColumns lists every header the loader needs, in the order they are
// reported when missing.
var RequiredColumns = []string{
	ColumnState,
	ColumnLGA,
	ColumnFacilityName,
	ColumnTxCurr,
	ColumnTxNew,
	ColumnVlEligible,
	ColumnTxPvlsD,
	ColumnTxPvlsN,
	ColumnPbs,
	ColumnPbsRecaptured,
	ColumnIitCases,
	ColumnPbsNdrFingerprints,
}

// FacilityRecord is one facility-period row of the workbook.
type FacilityRecord struct {
	State              string `json:"state"`
	LGA                string `json:"lga"`
	FacilityName       string `json:"facility_name"`
	TxCurr             int64  `json:"tx_curr"`
	TxNew              int64  `json:"tx_new"`
	VlEligible         int64  `json:"vl_eligible"`
	TxPvlsD            int64  `json:"tx_pvls_d"`
	TxPvlsN            int64  `json:"tx_pvls_n"`
	Pbs                int64  `json:"pbs"`
	PbsRecaptured      int64  `json:"pbs_recaptured"`
	IitCases           int64  `json:"iit_cases"`
	PbsNdrFingerprints int64  `json:"pbs_ndr_fingerprints"`

	// Cells holds the raw cell text aligned to Dataset.Columns so previews
	// and exports carry the full source column set.
	Cells []string `json:"-"`
}

// Value returns the text of a named indicator or label column. Unknown
// columns yield "".
func (r FacilityRecord) Value(column string) string {
	switch column {
	case ColumnState:
		return r.State
	case ColumnLGA:
		return r.LGA
	case ColumnFacilityName:
		return r.FacilityName
	}
	if n, ok := r.Count(column); ok {
		return strconv.FormatInt(n, 10)
	}
	return ""
}

// Count returns the parsed value of a count column.
func (r FacilityRecord) Count(column string) (int64, bool) {
	switch column {
	case ColumnTxCurr:
		return r.TxCurr, true
	case ColumnTxNew:
		return r.TxNew, true
	case ColumnVlEligible:
		return r.VlEligible, true
	case ColumnTxPvlsD:
		return r.TxPvlsD, true
	case ColumnTxPvlsN:
		return r.TxPvlsN, true
	case ColumnPbs:
		return r.Pbs, true
	case ColumnPbsRecaptured:
		return r.PbsRecaptured, true
	case ColumnIitCases:
		return r.IitCases, true
	case ColumnPbsNdrFingerprints:
		return r.PbsNdrFingerprints, true
	}
	return 0, false
}

// IsCountColumn reports whether column is one of the nine indicator columns.
func IsCountColumn(column string) bool {
	_, ok := FacilityRecord{}.Count(column)
	return ok
}

// Dataset is the in-memory table loaded from the source workbook.
// It is built once at startup and must not be mutated afterwards.
type Dataset struct {
	Source  string           `json:"source"`
	Sheet   string           `json:"sheet"`
	Columns []string         `json:"columns"`
	Records []FacilityRecord `json:"-"`
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}
