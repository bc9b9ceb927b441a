// SPDX-License-Identifier: MIT
package transport

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	applog "spectro/internal/log"
)

// DefaultSendInterval bounds broadcasts to roughly the viewer frame rate.
const DefaultSendInterval = 33 * time.Millisecond

// WebSocketTransport broadcasts spectral frames to connected clients so a
// browser can render the spectrogram. Broadcasts are rate limited to avoid
// flooding clients on fast pipelines.
//
// Thread safety: the client map is mutex-guarded, and Send may be called
// concurrently with connection handling.
type WebSocketTransport struct {
	clients         map[*websocket.Conn]bool
	clientsMutex    sync.Mutex
	upgrader        websocket.Upgrader
	server          *http.Server
	lastSend        time.Time
	minSendInterval time.Duration
}

// frameMessage is the JSON payload sent for every broadcast frame.
type frameMessage struct {
	Bins  int       `json:"bins"`
	Frame []float64 `json:"frame"`
}

// NewWebSocketTransport starts an HTTP server on the given port serving
// WebSocket upgrades at /spectra, and returns the transport. minInterval
// bounds the broadcast rate; <= 0 disables rate limiting.
func NewWebSocketTransport(port string, minInterval time.Duration) *WebSocketTransport {
	t := &WebSocketTransport{
		clients:         make(map[*websocket.Conn]bool),
		minSendInterval: minInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Local viewer tool, any origin may connect
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/spectra", t.handleWebSocket)
	t.server = &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		applog.Infof("Transport: WebSocket feed listening on port %s", port)
		if err := t.server.ListenAndServe(); err != http.ErrServerClosed {
			applog.Errorf("Transport: WebSocket server error: %v", err)
		}
	}()

	return t
}

// handleWebSocket upgrades the connection, registers the client, and watches
// for disconnect so dead clients are dropped from the broadcast set.
func (t *WebSocketTransport) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		applog.Warnf("Transport: WebSocket upgrade error: %v", err)
		return
	}

	t.clientsMutex.Lock()
	t.clients[conn] = true
	t.clientsMutex.Unlock()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				t.clientsMutex.Lock()
				delete(t.clients, conn)
				t.clientsMutex.Unlock()
				conn.Close()
				return
			}
		}
	}()
}

// Send broadcasts one frame to all connected clients. Frames arriving faster
// than the minimum interval are dropped, which is fine for a live view.
func (t *WebSocketTransport) Send(frame []float64) error {
	now := time.Now()
	if now.Sub(t.lastSend) < t.minSendInterval {
		return nil
	}
	t.lastSend = now

	payload, err := json.Marshal(frameMessage{Bins: len(frame), Frame: frame})
	if err != nil {
		return err
	}

	t.clientsMutex.Lock()
	for client := range t.clients {
		if err := client.WriteMessage(websocket.TextMessage, payload); err != nil {
			client.Close()
			delete(t.clients, client)
		}
	}
	t.clientsMutex.Unlock()

	return nil
}

// Close disconnects all clients and shuts down the HTTP server.
func (t *WebSocketTransport) Close() error {
	t.clientsMutex.Lock()
	for client := range t.clients {
		client.Close()
		delete(t.clients, client)
	}
	t.clientsMutex.Unlock()

	return t.server.Close()
}

var _ Transport = (*WebSocketTransport)(nil)
