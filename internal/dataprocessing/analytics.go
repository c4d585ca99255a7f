package dataprocessing

import (
	"emrdash/pkg/contracts/domain"
)

// Percent returns num / den * 100, or 0 when den is not positive.
func Percent(num, den int64) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}

// Aggregate sums the program indicators over records and derives the
// coverage and suppression ratios, overall and per group. Groups appear in
// first-seen order. Records with a blank LGA are left out of the LGA groups.
func Aggregate(records []domain.FacilityRecord) domain.ProgramMetrics {
	m := domain.ProgramMetrics{
		RowCount:         len(records),
		TxCurrByFacility: []domain.FacilityTotal{},
		SuppressionByLGA: []domain.LGARatio{},
		CoverageByLGA:    []domain.LGARatio{},
	}

	facilityIdx := make(map[string]int)
	lgaIdx := make(map[string]int)

	for _, r := range records {
		m.TxCurr += r.TxCurr
		m.TxNew += r.TxNew
		m.VlEligible += r.VlEligible
		m.TxPvlsD += r.TxPvlsD
		m.TxPvlsN += r.TxPvlsN
		m.Pbs += r.Pbs
		m.PbsRecaptured += r.PbsRecaptured
		m.IitCases += r.IitCases
		m.PbsNdrFingerprints += r.PbsNdrFingerprints

		i, ok := facilityIdx[r.FacilityName]
		if !ok {
			i = len(m.TxCurrByFacility)
			facilityIdx[r.FacilityName] = i
			m.TxCurrByFacility = append(m.TxCurrByFacility, domain.FacilityTotal{FacilityName: r.FacilityName})
		}
		m.TxCurrByFacility[i].TxCurr += r.TxCurr

		if r.LGA == "" {
			continue
		}
		j, ok := lgaIdx[r.LGA]
		if !ok {
			j = len(m.SuppressionByLGA)
			lgaIdx[r.LGA] = j
			m.SuppressionByLGA = append(m.SuppressionByLGA, domain.LGARatio{LGA: r.LGA})
			m.CoverageByLGA = append(m.CoverageByLGA, domain.LGARatio{LGA: r.LGA})
		}
		m.SuppressionByLGA[j].Numerator += r.TxPvlsN
		m.SuppressionByLGA[j].Denominator += r.TxPvlsD
		m.CoverageByLGA[j].Numerator += r.TxPvlsD
		m.CoverageByLGA[j].Denominator += r.VlEligible
	}

	m.FacilityCount = len(m.TxCurrByFacility)
	m.VlCoverage = Percent(m.TxPvlsD, m.VlEligible)
	m.VlSuppression = Percent(m.TxPvlsN, m.TxPvlsD)

	for j := range m.SuppressionByLGA {
		m.SuppressionByLGA[j].Percent = Percent(m.SuppressionByLGA[j].Numerator, m.SuppressionByLGA[j].Denominator)
		m.CoverageByLGA[j].Percent = Percent(m.CoverageByLGA[j].Numerator, m.CoverageByLGA[j].Denominator)
	}

	return m
}
