package http

import (
	"net/url"

	"emrdash/pkg/contracts/domain"
)

// Query and form keys of the three cascade levels. Each may repeat.
const (
	paramState    = "state"
	paramLGA      = "lga"
	paramFacility = "facility"

	// paramForm marks a submit of the filter form. It makes an all-empty
	// submit clear the pending selection instead of being ignored.
	paramForm = "f"
)

// selectionFromValues reads a selection from query or form values.
func selectionFromValues(values url.Values) domain.Selection {
	return domain.Selection{
		States:     values[paramState],
		LGAs:       values[paramLGA],
		Facilities: values[paramFacility],
	}.Normalize()
}

// hasSelection reports whether the values carry a selection: the form
// marker or any cascade key, even empty.
func hasSelection(values url.Values) bool {
	for _, k := range []string{paramForm, paramState, paramLGA, paramFacility} {
		if _, ok := values[k]; ok {
			return true
		}
	}
	return false
}
