package dashboard

import (
	"sync"
	"time"

	"emrdash/pkg/contracts/domain"
)

// Session holds the user's pending and applied selections. The pending
// selection only drives the option lists; the applied one drives the view.
type Session struct {
	mu      sync.RWMutex
	pending domain.Selection
	view    *domain.DashboardView

	previewLimit int
	now          func() time.Time
}

// NewSession returns an Idle session.
func NewSession(previewLimit int) *Session {
	return &Session{
		previewLimit: previewLimit,
		now:          time.Now,
	}
}

// SetPending records the selection being edited.
func (s *Session) SetPending(sel domain.Selection) {
	s.mu.Lock()
	s.pending = sel
	s.mu.Unlock()
}

// Pending returns the selection being edited.
func (s *Session) Pending() domain.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending
}

// Apply builds the view for sel against ds and makes it current.
func (s *Session) Apply(ds *domain.Dataset, sel domain.Selection) *domain.DashboardView {
	view := BuildView(ds, sel, s.previewLimit, s.now())

	s.mu.Lock()
	s.pending = sel
	s.view = view
	s.mu.Unlock()

	return view
}

// View returns the current view, or nil while Idle.
func (s *Session) View() *domain.DashboardView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// State returns a snapshot suitable for rendering.
func (s *Session) State() domain.DashboardState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.view == nil {
		return domain.DashboardState{Status: domain.DashboardIdle, Message: IdlePrompt}
	}
	return domain.DashboardState{Status: domain.DashboardRendered, View: s.view}
}
