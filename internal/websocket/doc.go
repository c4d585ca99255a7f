// Package websocket pushes dashboard events to browser clients.
//
// A single Hub goroutine owns the client set. Clients register through the
// HTTP upgrade handler, and every applied selection is broadcast to all of
// them as a dashboard:rendered message. Each client runs a read pump that
// only tracks liveness and a write pump that drains its send buffer
// and pings the peer.
package websocket
