package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emrdash/pkg/contracts/domain"
)

func TestStateOptions(t *testing.T) {
	ds := cascadeDataset()
	assert.Equal(t, []string{"Ogun", "Lagos"}, StateOptions(ds), "blank states are excluded, first-seen order kept")
	assert.Empty(t, StateOptions(nil))
}

func TestLGAOptions(t *testing.T) {
	ds := cascadeDataset()

	tests := []struct {
		name   string
		states []string
		want   []string
	}{
		{"no state filter", nil, []string{"Abeokuta North", "Ijebu Ode", "Ikeja"}},
		{"single state", []string{"Lagos"}, []string{"Ikeja"}},
		{"two states", []string{"Lagos", "Ogun"}, []string{"Abeokuta North", "Ijebu Ode", "Ikeja"}},
		{"unknown state", []string{"Kano"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LGAOptions(ds, tt.states))
		})
	}
}

func TestFacilityOptions(t *testing.T) {
	ds := cascadeDataset()

	tests := []struct {
		name   string
		states []string
		lgas   []string
		want   []string
	}{
		{"no filters", nil, nil, []string{"Lafenwa PHC", "Iberekodo PHC", "Ijebu Ode GH", "LASUTH", "Ikeja GH", "Unassigned Clinic"}},
		{"state only", []string{"Ogun"}, nil, []string{"Lafenwa PHC", "Iberekodo PHC", "Ijebu Ode GH"}},
		{"lga only", nil, []string{"Ikeja"}, []string{"LASUTH", "Ikeja GH"}},
		{"state and lga", []string{"Ogun"}, []string{"Ijebu Ode"}, []string{"Ijebu Ode GH"}},
		{"lga outside state", []string{"Lagos"}, []string{"Ijebu Ode"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FacilityOptions(ds, tt.states, tt.lgas))
		})
	}
}

func TestCascade_NeverWidens(t *testing.T) {
	ds := cascadeDataset()
	all := FacilityOptions(ds, nil, nil)

	selections := []domain.Selection{
		{},
		{States: []string{"Ogun"}},
		{States: []string{"Ogun"}, LGAs: []string{"Abeokuta North"}},
		{LGAs: []string{"Ikeja", "Ijebu Ode"}},
		{States: []string{"Lagos"}, LGAs: []string{"Abeokuta North"}},
		{States: []string{"Kano"}},
		{States: []string{"Ogun"}, Facilities: []string{"LASUTH"}},
	}

	for _, sel := range selections {
		opts := Cascade(ds, sel)
		assert.Equal(t, StateOptions(ds), opts.States)

		lgaUniverse := FacilityOptions(ds, sel.States, nil)
		assert.Subset(t, lgaUniverse, opts.Facilities, "selection %+v", sel)
		assert.Subset(t, all, lgaUniverse, "selection %+v", sel)
		assert.Subset(t, LGAOptions(ds, nil), opts.LGAs, "selection %+v", sel)
	}
}

func TestApply(t *testing.T) {
	ds := cascadeDataset()

	tests := []struct {
		name       string
		sel        domain.Selection
		wantFacils []string
	}{
		{
			name:       "state",
			sel:        domain.Selection{States: []string{"Lagos"}},
			wantFacils: []string{"LASUTH", "Ikeja GH"},
		},
		{
			name:       "state and lga",
			sel:        domain.Selection{States: []string{"Ogun"}, LGAs: []string{"Abeokuta North"}},
			wantFacils: []string{"Lafenwa PHC", "Iberekodo PHC", "Lafenwa PHC"},
		},
		{
			name:       "facility only",
			sel:        domain.Selection{Facilities: []string{"Ikeja GH", "Lafenwa PHC"}},
			wantFacils: []string{"Lafenwa PHC", "Ikeja GH", "Lafenwa PHC"},
		},
		{
			name:       "stale lga narrows to nothing",
			sel:        domain.Selection{States: []string{"Lagos"}, LGAs: []string{"Ijebu Ode"}},
			wantFacils: []string{},
		},
		{
			name:       "duplicates in selection are ignored",
			sel:        domain.Selection{States: []string{"Lagos", "Lagos"}, LGAs: []string{"Ikeja"}},
			wantFacils: []string{"LASUTH", "Ikeja GH"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subset := Apply(ds, tt.sel)
			require.NotNil(t, subset)
			got := make([]string, 0, len(subset))
			for _, r := range subset {
				got = append(got, r.FacilityName)
			}
			assert.Equal(t, tt.wantFacils, got)
		})
	}
}

func TestApply_EmptySelectionReturnsFullDataset(t *testing.T) {
	ds := cascadeDataset()
	before := append([]domain.FacilityRecord(nil), ds.Records...)

	subset := Apply(ds, domain.Selection{})
	assert.Equal(t, ds.Records, subset)

	// Appending to the result must not write into the dataset's backing array.
	_ = append(subset, domain.FacilityRecord{FacilityName: "extra"})
	assert.Equal(t, before, ds.Records)
	assert.Len(t, ds.Records, len(before))
}

func TestApply_Deterministic(t *testing.T) {
	ds := cascadeDataset()
	sel := domain.Selection{States: []string{"Ogun"}}
	assert.Equal(t, Apply(ds, sel), Apply(ds, sel))
	assert.Empty(t, Apply(nil, sel))
}
