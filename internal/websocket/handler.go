package websocket

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"emrdash/internal/config"
	apierrors "emrdash/internal/errors"
	"emrdash/internal/infrastructure"
)

// Handler upgrades GET /ws requests and attaches the connection to the hub.
type Handler struct {
	hub          *Hub
	upgrader     websocket.Upgrader
	errorHandler *apierrors.ErrorHandler
}

// NewHandler creates the upgrade handler. Same-host origins are always
// accepted; others must be listed in allowedOrigins ("*" accepts any).
func NewHandler(hub *Hub, cfg config.WebSocketConfig, allowedOrigins []string, errorHandler *apierrors.ErrorHandler) *Handler {
	h := &Handler{
		hub:          hub,
		errorHandler: errorHandler,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(r, allowedOrigins)
		},
		Error: h.upgradeError,
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already answered through upgradeError.
		return
	}

	client := NewClient(h.hub, gorillaConn{Conn: conn}, infrastructure.GetTraceID(r.Context()))
	if !h.hub.Register(client) {
		_ = conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

func (h *Handler) upgradeError(w http.ResponseWriter, r *http.Request, status int, reason error) {
	h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
		status,
		apierrors.ErrWebSocketUpgrade.ErrorCode,
		apierrors.ErrWebSocketUpgrade.Message,
		reason.Error(),
	))
}

func originAllowed(r *http.Request, allowed []string) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, a := range allowed {
		if a == "*" || strings.EqualFold(a, origin) {
			return true
		}
	}
	return false
}
