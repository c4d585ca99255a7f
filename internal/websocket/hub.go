package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"

	"emrdash/internal/config"
	"emrdash/internal/infrastructure"
	"emrdash/pkg/contracts/events"
)

// broadcastBuffer bounds the queue between publishers and the hub loop.
const broadcastBuffer = 64

type outbound struct {
	messageType string
	payload     []byte
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients map[*Client]struct{}
	mu      sync.RWMutex

	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	pingPeriod time.Duration
	pongWait   time.Duration

	logger  *slog.Logger
	metrics *hubMetrics
}

// NewHub creates a hub. A nil meter disables hub metrics.
func NewHub(cfg config.WebSocketConfig, logger *slog.Logger, meter metric.Meter) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = logger.With(slog.String("component", "websocket.hub"))

	h := &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan outbound, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		pingPeriod: cfg.PingPeriod,
		pongWait:   cfg.PongWait,
		logger:     logger,
	}
	if h.pongWait <= 0 {
		h.pongWait = 60 * time.Second
	}
	if h.pingPeriod <= 0 || h.pingPeriod >= h.pongWait {
		h.pingPeriod = (h.pongWait * 9) / 10
	}

	if meter != nil {
		m, err := newHubMetrics(meter)
		if err != nil {
			logger.Warn("websocket metrics disabled", slog.String("error", err.Error()))
		}
		h.metrics = m
	}
	return h
}

// Run is the hub's main loop. It returns when ctx is cancelled, after
// closing every client's send channel.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	h.logger.InfoContext(ctx, "WebSocket hub started")

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			h.logger.Info("WebSocket hub stopped")
			return nil

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			count := len(h.clients)
			h.mu.Unlock()

			h.metrics.connected(ctx)
			h.logger.InfoContext(client.context(), "Client registered",
				slog.Int("total_clients", count),
				slog.String("remote_addr", client.remoteAddr))

			h.greet(client)

		case client := <-h.unregister:
			h.mu.Lock()
			_, ok := h.clients[client]
			if ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()

			if ok {
				h.metrics.disconnected(ctx)
				h.logger.InfoContext(client.context(), "Client unregistered",
					slog.Int("total_clients", count),
					slog.Duration("connection_duration", time.Since(client.connectedAt)))
			}

		case msg := <-h.broadcast:
			h.deliver(ctx, msg)
		}
	}
}

func (h *Hub) deliver(ctx context.Context, msg outbound) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for client := range h.clients {
		select {
		case client.send <- msg.payload:
			sent++
		default:
			close(client.send)
			delete(h.clients, client)
			h.metrics.dropped(ctx, "client")
			h.metrics.disconnected(ctx)
			h.logger.WarnContext(client.context(), "Client send buffer full, disconnecting")
		}
	}
	h.metrics.sent(ctx, msg.messageType, sent)

	h.logger.DebugContext(ctx, "Broadcast delivered",
		slog.String("message_type", msg.messageType),
		slog.Int("client_count", sent),
		slog.Int("message_size", len(msg.payload)))
}

func (h *Hub) greet(client *Client) {
	msg := events.WebSocketMessage{
		BaseMessage: events.BaseMessage{
			ID:        client.id,
			Type:      events.MessageTypeConnect,
			Timestamp: time.Now(),
			TraceID:   client.traceID,
		},
		Data: map[string]string{
			"status":    "connected",
			"client_id": client.id,
		},
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case client.send <- payload:
	default:
		h.logger.Warn("Failed to send connection message, client buffer full",
			slog.String("client_id", client.id))
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

// Broadcast queues msg for every connected client. It never blocks; when
// the queue is full the message is dropped and logged.
func (h *Hub) Broadcast(msg events.WebSocketMessage) {
	ctx := context.Background()
	if msg.TraceID != "" {
		ctx = infrastructure.WithTraceID(ctx, msg.TraceID)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.ErrorContext(ctx, "Error marshaling message",
			slog.String("message_type", string(msg.Type)),
			slog.String("error", err.Error()))
		return
	}

	select {
	case h.broadcast <- outbound{messageType: string(msg.Type), payload: payload}:
	default:
		h.metrics.dropped(ctx, "hub")
		h.logger.WarnContext(ctx, "Broadcast queue full, message dropped",
			slog.String("message_type", string(msg.Type)))
	}
}

// Register adds a client. It reports false when the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client. It is a no-op once the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
