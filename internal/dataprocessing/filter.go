package dataprocessing

import (
	"emrdash/pkg/contracts/domain"
)

// StateOptions returns the distinct non-blank State values in dataset order.
func StateOptions(ds *domain.Dataset) []string {
	return distinct(ds, func(domain.FacilityRecord) bool { return true }, stateOf)
}

// LGAOptions returns the distinct LGA values among records whose State is in
// states, or among all records when states is empty.
func LGAOptions(ds *domain.Dataset, states []string) []string {
	stateSet := domain.NewValueSet(states)
	return distinct(ds, func(r domain.FacilityRecord) bool {
		return stateSet.Matches(r.State)
	}, lgaOf)
}

// FacilityOptions returns the distinct facility names among records matching
// both the State and the LGA filter.
func FacilityOptions(ds *domain.Dataset, states, lgas []string) []string {
	stateSet := domain.NewValueSet(states)
	lgaSet := domain.NewValueSet(lgas)
	return distinct(ds, func(r domain.FacilityRecord) bool {
		return stateSet.Matches(r.State) && lgaSet.Matches(r.LGA)
	}, facilityOf)
}

// Cascade computes the options for every level of a pending selection.
// Facility choices do not narrow any level.
func Cascade(ds *domain.Dataset, sel domain.Selection) domain.FilterOptions {
	return domain.FilterOptions{
		States:     StateOptions(ds),
		LGAs:       LGAOptions(ds, sel.States),
		Facilities: FacilityOptions(ds, sel.States, sel.LGAs),
	}
}

// Apply returns the records satisfying every non-empty level of sel, in
// dataset order. An empty selection returns the full dataset. A selection
// that matches nothing returns an empty, non-nil slice.
func Apply(ds *domain.Dataset, sel domain.Selection) []domain.FacilityRecord {
	if ds == nil {
		return []domain.FacilityRecord{}
	}
	if sel.IsEmpty() {
		// Full slice expression keeps appends by callers off the dataset.
		return ds.Records[:len(ds.Records):len(ds.Records)]
	}

	stateSet := domain.NewValueSet(sel.States)
	lgaSet := domain.NewValueSet(sel.LGAs)
	facilitySet := domain.NewValueSet(sel.Facilities)

	subset := make([]domain.FacilityRecord, 0)
	for _, r := range ds.Records {
		if stateSet.Matches(r.State) && lgaSet.Matches(r.LGA) && facilitySet.Matches(r.FacilityName) {
			subset = append(subset, r)
		}
	}
	return subset
}

func stateOf(r domain.FacilityRecord) string    { return r.State }
func lgaOf(r domain.FacilityRecord) string      { return r.LGA }
func facilityOf(r domain.FacilityRecord) string { return r.FacilityName }

// distinct collects first-seen non-blank keys of the records accepted by keep.
func distinct(ds *domain.Dataset, keep func(domain.FacilityRecord) bool, key func(domain.FacilityRecord) string) []string {
	out := make([]string, 0)
	if ds == nil {
		return out
	}
	seen := make(map[string]struct{})
	for _, r := range ds.Records {
		if !keep(r) {
			continue
		}
		k := key(r)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
