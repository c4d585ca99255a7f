package domain

// ProgramMetrics holds the summed indicators and derived ratios over a
// filtered subset, plus the grouped totals used for charting.
type ProgramMetrics struct {
	RowCount      int `json:"row_count"`
	FacilityCount int `json:"facility_count"`

	TxCurr             int64 `json:"tx_curr"`
	TxNew              int64 `json:"tx_new"`
	VlEligible         int64 `json:"vl_eligible"`
	TxPvlsD            int64 `json:"tx_pvls_d"`
	TxPvlsN            int64 `json:"tx_pvls_n"`
	Pbs                int64 `json:"pbs"`
	PbsRecaptured      int64 `json:"pbs_recaptured"`
	IitCases           int64 `json:"iit_cases"`
	PbsNdrFingerprints int64 `json:"pbs_ndr_fingerprints"`

	// VlCoverage is TxPvlsD / VlEligible * 100, or 0 when VlEligible is 0.
	VlCoverage float64 `json:"vl_coverage"`
	// VlSuppression is TxPvlsN / TxPvlsD * 100, or 0 when TxPvlsD is 0.
	VlSuppression float64 `json:"vl_suppression"`

	TxCurrByFacility []FacilityTotal `json:"tx_curr_by_facility"`
	SuppressionByLGA []LGARatio      `json:"suppression_by_lga"`
	CoverageByLGA    []LGARatio      `json:"coverage_by_lga"`
}

// FacilityTotal is the TX_CURR sum for one facility.
type FacilityTotal struct {
	FacilityName string `json:"facility_name"`
	TxCurr       int64  `json:"tx_curr"`
}

// LGARatio is a per-LGA numerator/denominator pair and the derived percentage.
type LGARatio struct {
	LGA         string  `json:"lga"`
	Numerator   int64   `json:"numerator"`
	Denominator int64   `json:"denominator"`
	Percent     float64 `json:"percent"`
}
