package dashboard

import "errors"

var (
	// ErrNotApplied is returned for view-dependent requests while Idle.
	ErrNotApplied = errors.New("no selection has been applied")
	// ErrUnknownChart is returned for a chart id the view does not have.
	ErrUnknownChart = errors.New("unknown chart")
)
