// Package events contains the websocket message contracts of the dashboard.
package events

import (
	"time"

	"emrdash/pkg/contracts/domain"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// MessageTypeDashboardRendered is sent after every applied selection
	MessageTypeDashboardRendered MessageType = "dashboard:rendered"

	// Connection messages
	MessageTypeConnect MessageType = "connect"
	MessageTypeError   MessageType = "error"
)

// BaseMessage represents the base structure for all WebSocket messages
type BaseMessage struct {
	ID        string      `json:"id,omitempty"`
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	TraceID   string      `json:"trace_id,omitempty"`
}

// WebSocketMessage represents a complete WebSocket message
type WebSocketMessage struct {
	BaseMessage
	Data interface{} `json:"data,omitempty"`
}

// DashboardRendered is the payload of a dashboard:rendered message. It
// carries the KPIs so listeners can refresh without another request.
type DashboardRendered struct {
	Selection domain.Selection `json:"selection"`
	RowCount  int              `json:"row_count"`
	KPIs      []domain.KPI     `json:"kpis"`
	AppliedAt time.Time        `json:"applied_at"`
}

// NewDashboardRendered builds the message announcing view.
func NewDashboardRendered(id, traceID string, view *domain.DashboardView) WebSocketMessage {
	return WebSocketMessage{
		BaseMessage: BaseMessage{
			ID:        id,
			Type:      MessageTypeDashboardRendered,
			Timestamp: time.Now(),
			TraceID:   traceID,
		},
		Data: DashboardRendered{
			Selection: view.Selection,
			RowCount:  view.Metrics.RowCount,
			KPIs:      view.KPIs,
			AppliedAt: view.AppliedAt,
		},
	}
}
