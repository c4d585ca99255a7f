// Package api contains the JSON request and response contracts of the
// dashboard API, version v1.
package api

import (
	"emrdash/pkg/contracts/domain"
)

// ApplyRequest is the body of POST /api/dashboard/apply. Empty lists mean no
// filter at that level.
type ApplyRequest struct {
	States     []string `json:"states" validate:"max=500,dive,notblank,max=256"`
	LGAs       []string `json:"lgas" validate:"max=500,dive,notblank,max=256"`
	Facilities []string `json:"facilities" validate:"max=500,dive,notblank,max=256"`
}

// Selection converts the request into a domain selection.
func (r ApplyRequest) Selection() domain.Selection {
	return domain.Selection{
		States:     r.States,
		LGAs:       r.LGAs,
		Facilities: r.Facilities,
	}
}

// OptionsResponse is returned by GET /api/dashboard/options.
type OptionsResponse struct {
	Selection domain.Selection     `json:"selection"`
	Options   domain.FilterOptions `json:"options"`
}
