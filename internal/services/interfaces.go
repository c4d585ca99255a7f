package services

import (
	"context"

	"emrdash/internal/dataprocessing"
	"emrdash/pkg/contracts/domain"
	"emrdash/pkg/contracts/events"
)

// DatasetLoader provides the cached dataset and its load status.
type DatasetLoader interface {
	Load(ctx context.Context) (*domain.Dataset, error)
	Status() dataprocessing.LoadStatus
}

// Broadcaster publishes events to connected websocket clients.
type Broadcaster interface {
	Broadcast(msg events.WebSocketMessage)
}

// ClientCounter reports connected websocket clients.
type ClientCounter interface {
	ClientCount() int
}
