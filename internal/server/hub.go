package server

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/ayusman/fingerdraw/internal/app"
)

// clientBuffer is how many events may queue for one slow WebSocket client
// before further events are dropped for it.
const clientBuffer = 32

// Hub fans loop output out to preview clients. It keeps only the latest
// composited frame and forwards events to every connected client.
type Hub struct {
	logger *zap.Logger

	mu      sync.RWMutex
	frame   []byte
	next    chan struct{} // closed and replaced on every frame
	viewers int
	clients map[*client]struct{}
}

type client struct {
	send chan []byte
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger:  logger.Named("hub"),
		next:    make(chan struct{}),
		clients: make(map[*client]struct{}),
	}
}

var _ app.Publisher = (*Hub)(nil)

// Active reports whether a stream viewer is connected.
func (h *Hub) Active() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.viewers > 0
}

// PublishFrame stores jpeg as the latest frame and wakes stream viewers.
func (h *Hub) PublishFrame(jpeg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frame = jpeg
	close(h.next)
	h.next = make(chan struct{})
}

// Frame returns the latest frame and a channel closed when a newer one
// arrives. The frame is nil until the first publish.
func (h *Hub) Frame() ([]byte, <-chan struct{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.frame, h.next
}

// PublishEvent sends ev to every connected client.
func (h *Hub) PublishEvent(ev app.Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.logger.Warn("encoding event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Debug("event dropped for slow client", zap.String("type", ev.Type))
		}
	}
}

// Clients returns the number of connected event clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addViewer() {
	h.mu.Lock()
	h.viewers++
	h.mu.Unlock()
}

func (h *Hub) removeViewer() {
	h.mu.Lock()
	h.viewers--
	h.mu.Unlock()
}

func (h *Hub) register() *client {
	c := &client{send: make(chan []byte, clientBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}
