package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emrdash/pkg/contracts/domain"
)

func TestAggregate_Scenario(t *testing.T) {
	ds := scenarioDataset()

	t.Run("state A", func(t *testing.T) {
		subset := Apply(ds, domain.Selection{States: []string{"A"}})
		require.Len(t, subset, 1)
		assert.Equal(t, "F1", subset[0].FacilityName)

		m := Aggregate(subset)
		assert.Equal(t, int64(10), m.TxCurr)
		assert.InDelta(t, 80.0, m.VlCoverage, 1e-9)
		assert.InDelta(t, 50.0, m.VlSuppression, 1e-9)
	})

	t.Run("state B", func(t *testing.T) {
		m := Aggregate(Apply(ds, domain.Selection{States: []string{"B"}}))
		assert.Equal(t, int64(20), m.TxCurr)
		assert.Equal(t, 0.0, m.VlCoverage)
		assert.Equal(t, 0.0, m.VlSuppression)
		require.Len(t, m.SuppressionByLGA, 1)
		assert.Equal(t, 0.0, m.SuppressionByLGA[0].Percent)
		assert.Equal(t, 0.0, m.CoverageByLGA[0].Percent)
	})
}

func TestAggregate_Empty(t *testing.T) {
	m := Aggregate(nil)
	assert.Equal(t, domain.ProgramMetrics{
		TxCurrByFacility: []domain.FacilityTotal{},
		SuppressionByLGA: []domain.LGARatio{},
		CoverageByLGA:    []domain.LGARatio{},
	}, m)
}

func TestAggregate_Sums(t *testing.T) {
	records := []domain.FacilityRecord{
		{State: "Ogun", LGA: "Ikenne", FacilityName: "Ikenne GH", TxCurr: 10, TxNew: 1, VlEligible: 8, TxPvlsD: 6, TxPvlsN: 5, Pbs: 4, PbsRecaptured: 3, IitCases: 2, PbsNdrFingerprints: 1},
		{State: "Ogun", LGA: "Ikenne", FacilityName: "Ilisan PHC", TxCurr: 20, TxNew: 2, VlEligible: 16, TxPvlsD: 12, TxPvlsN: 10, Pbs: 8, PbsRecaptured: 6, IitCases: 4, PbsNdrFingerprints: 2},
	}

	m := Aggregate(records)
	assert.Equal(t, 2, m.RowCount)
	assert.Equal(t, 2, m.FacilityCount)
	assert.Equal(t, int64(30), m.TxCurr)
	assert.Equal(t, int64(3), m.TxNew)
	assert.Equal(t, int64(24), m.VlEligible)
	assert.Equal(t, int64(18), m.TxPvlsD)
	assert.Equal(t, int64(15), m.TxPvlsN)
	assert.Equal(t, int64(12), m.Pbs)
	assert.Equal(t, int64(9), m.PbsRecaptured)
	assert.Equal(t, int64(6), m.IitCases)
	assert.Equal(t, int64(3), m.PbsNdrFingerprints)
	assert.InDelta(t, 75.0, m.VlCoverage, 1e-9)
	assert.InDelta(t, 83.333, m.VlSuppression, 1e-3)
}

func TestAggregate_Groups(t *testing.T) {
	m := Aggregate(cascadeDataset().Records)

	assert.Equal(t, []domain.FacilityTotal{
		{FacilityName: "Lafenwa PHC", TxCurr: 125},
		{FacilityName: "Iberekodo PHC", TxCurr: 40},
		{FacilityName: "Ijebu Ode GH", TxCurr: 300},
		{FacilityName: "LASUTH", TxCurr: 900},
		{FacilityName: "Ikeja GH", TxCurr: 250},
		{FacilityName: "Unassigned Clinic", TxCurr: 7},
	}, m.TxCurrByFacility)

	require.Len(t, m.SuppressionByLGA, 3, "blank LGA is not a group")
	assert.Equal(t, "Abeokuta North", m.SuppressionByLGA[0].LGA)
	assert.Equal(t, int64(113), m.SuppressionByLGA[0].Numerator)
	assert.Equal(t, int64(125), m.SuppressionByLGA[0].Denominator)
	assert.InDelta(t, 90.4, m.SuppressionByLGA[0].Percent, 1e-9)

	assert.Equal(t, "Ikeja", m.CoverageByLGA[2].LGA)
	assert.Equal(t, int64(700), m.CoverageByLGA[2].Numerator)
	assert.Equal(t, int64(800), m.CoverageByLGA[2].Denominator)
	assert.InDelta(t, 87.5, m.CoverageByLGA[2].Percent, 1e-9)
}

func TestAggregate_FacilitySumEqualsTotal(t *testing.T) {
	ds := cascadeDataset()
	selections := []domain.Selection{
		{},
		{States: []string{"Ogun"}},
		{LGAs: []string{"Ikeja"}},
		{Facilities: []string{"Lafenwa PHC"}},
		{States: []string{"Kano"}},
	}

	for _, sel := range selections {
		m := Aggregate(Apply(ds, sel))
		var sum int64
		for _, f := range m.TxCurrByFacility {
			sum += f.TxCurr
		}
		assert.Equal(t, m.TxCurr, sum, "selection %+v", sel)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		num, den int64
		want     float64
	}{
		{"zero denominator", 5, 0, 0},
		{"negative denominator", 5, -1, 0},
		{"zero numerator", 0, 10, 0},
		{"full", 10, 10, 100},
		{"half", 2, 4, 50},
		{"coverage", 4, 5, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percent(tt.num, tt.den)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
		})
	}
}

func TestPercent_Bounds(t *testing.T) {
	for den := int64(0); den <= 20; den++ {
		for num := int64(0); num <= den; num++ {
			p := Percent(num, den)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 100.0)
		}
	}
}
