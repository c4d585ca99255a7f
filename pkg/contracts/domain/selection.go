package domain

import "strings"

// Selection is the set of filter values chosen at each cascade level.
// An empty level means no filter at that level.
type Selection struct {
	States     []string `json:"states"`
	LGAs       []string `json:"lgas"`
	Facilities []string `json:"facilities"`
}

// IsEmpty reports whether no level carries a filter.
func (s Selection) IsEmpty() bool {
	return len(s.States) == 0 && len(s.LGAs) == 0 && len(s.Facilities) == 0
}

// Normalize trims values, drops blanks and duplicates, and keeps the first
// occurrence order. Empty levels become empty, non-nil slices.
func (s Selection) Normalize() Selection {
	return Selection{
		States:     uniqueValues(s.States),
		LGAs:       uniqueValues(s.LGAs),
		Facilities: uniqueValues(s.Facilities),
	}
}

func uniqueValues(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ValueSet is a set of selected values. A nil or empty set matches everything.
type ValueSet map[string]struct{}

// NewValueSet builds a set from values, ignoring duplicates.
func NewValueSet(values []string) ValueSet {
	if len(values) == 0 {
		return nil
	}
	set := make(ValueSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Matches reports whether v passes the filter.
func (s ValueSet) Matches(v string) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[v]
	return ok
}

// FilterOptions holds the values offered at each cascade level.
type FilterOptions struct {
	States     []string `json:"states"`
	LGAs       []string `json:"lgas"`
	Facilities []string `json:"facilities"`
}
