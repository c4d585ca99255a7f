package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emrdash/internal/config"
	apierrors "emrdash/internal/errors"
	"emrdash/internal/infrastructure"
	"emrdash/pkg/contracts/domain"
	"emrdash/pkg/contracts/events"
)

// mockConnection records writes and blocks reads until closed.
type mockConnection struct {
	mu      sync.Mutex
	written [][]byte
	closed  chan struct{}
	once    sync.Once
}

func newMockConnection() *mockConnection {
	return &mockConnection{closed: make(chan struct{})}
}

func (m *mockConnection) WriteMessage(messageType int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	select {
	case <-m.closed:
		return errors.New("connection closed")
	default:
	}
	if messageType == websocket.TextMessage {
		m.written = append(m.written, append([]byte(nil), data...))
	}
	return nil
}

func (m *mockConnection) ReadMessage() (int, []byte, error) {
	<-m.closed
	return 0, nil, &websocket.CloseError{Code: websocket.CloseNormalClosure}
}

func (m *mockConnection) Close() error {
	m.once.Do(func() { close(m.closed) })
	return nil
}

func (m *mockConnection) SetReadDeadline(time.Time) error   { return nil }
func (m *mockConnection) SetWriteDeadline(time.Time) error  { return nil }
func (m *mockConnection) SetReadLimit(int64)                {}
func (m *mockConnection) SetPongHandler(func(string) error) {}
func (m *mockConnection) RemoteAddr() string                { return "127.0.0.1:4000" }

func (m *mockConnection) messages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.written...)
}

func testHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	providers := infrastructure.NoopProviders(logger)
	hub := NewHub(config.Default().WebSocket, logger, providers.Meter)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub, cancel
}

func sampleView() *domain.DashboardView {
	return &domain.DashboardView{
		Selection: domain.Selection{States: []string{"Ogun"}},
		Metrics:   domain.ProgramMetrics{RowCount: 2},
		KPIs:      []domain.KPI{{Key: "tx_curr", Label: "TX_CURR", Value: "1,250"}},
		AppliedAt: time.Date(2025, 7, 12, 9, 0, 0, 0, time.UTC),
	}
}

func TestNewHub_Defaults(t *testing.T) {
	hub := NewHub(config.WebSocketConfig{PingPeriod: time.Minute, PongWait: 10 * time.Second}, nil, nil)
	assert.Equal(t, 10*time.Second, hub.pongWait)
	assert.Equal(t, 9*time.Second, hub.pingPeriod, "ping period must stay below pong wait")
	assert.Nil(t, hub.metrics)
}

func TestHub_RegisterBroadcastUnregister(t *testing.T) {
	hub, _ := testHub(t)
	conn := newMockConnection()
	client := NewClient(hub, conn, "trace-ws")

	require.True(t, hub.Register(client))
	go client.WritePump()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast(events.NewDashboardRendered("msg-1", "trace-ws", sampleView()))

	require.Eventually(t, func() bool { return len(conn.messages()) == 2 }, time.Second, 5*time.Millisecond)
	msgs := conn.messages()

	var connect events.WebSocketMessage
	require.NoError(t, json.Unmarshal(msgs[0], &connect))
	assert.Equal(t, events.MessageTypeConnect, connect.Type)

	var rendered struct {
		Type    string                   `json:"type"`
		TraceID string                   `json:"trace_id"`
		Data    events.DashboardRendered `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msgs[1], &rendered))
	assert.Equal(t, "dashboard:rendered", rendered.Type)
	assert.Equal(t, "trace-ws", rendered.TraceID)
	assert.Equal(t, 2, rendered.Data.RowCount)
	assert.Equal(t, "1,250", rendered.Data.KPIs[0].Value)

	hub.Unregister(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub, _ := testHub(t)
	assert.NotPanics(t, func() {
		hub.Broadcast(events.NewDashboardRendered("msg", "", sampleView()))
	})
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_BroadcastNeverBlocks(t *testing.T) {
	// No Run loop: the queue fills and further messages are dropped.
	hub := NewHub(config.Default().WebSocket, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)

	finished := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer*2; i++ {
			hub.Broadcast(events.NewDashboardRendered("msg", "", sampleView()))
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked with a full queue")
	}
	assert.Len(t, hub.broadcast, broadcastBuffer)
}

func TestHub_StopClosesClients(t *testing.T) {
	hub, cancel := testHub(t)
	conn := newMockConnection()
	client := NewClient(hub, conn, "")
	require.True(t, hub.Register(client))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-hub.done

	assert.Equal(t, 0, hub.ClientCount())
	assert.False(t, hub.Register(NewClient(hub, newMockConnection(), "")))
	assert.NotPanics(t, func() { hub.Unregister(client) })
}

func TestHandler_EndToEnd(t *testing.T) {
	hub, _ := testHub(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(hub, config.Default().WebSocket, nil, apierrors.NewErrorHandler(logger, false))

	srv := httptest.NewServer(h)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	defer resp.Body.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, first, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(first), `"type":"connect"`)

	hub.Broadcast(events.NewDashboardRendered("msg-2", "", sampleView()))
	_, second, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(second), `"type":"dashboard:rendered"`)
}

func TestHandler_RejectsForeignOrigin(t *testing.T) {
	hub, _ := testHub(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(hub, config.Default().WebSocket, []string{"http://localhost:8080"}, apierrors.NewErrorHandler(logger, false))

	srv := httptest.NewServer(h)
	defer srv.Close()

	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "/errors/websocket/upgrade-failed")
}

func TestOriginAllowed(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		allowed []string
		want    bool
	}{
		{"no origin", "", nil, true},
		{"same host", "http://example.com", nil, true},
		{"listed", "http://localhost:8080", []string{"http://localhost:8080"}, true},
		{"wildcard", "http://other.example", []string{"*"}, true},
		{"foreign", "http://other.example", []string{"http://localhost:8080"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "http://example.com/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, originAllowed(r, tt.allowed))
		})
	}
}
