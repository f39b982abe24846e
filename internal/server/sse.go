package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/javajack/xlgrid"
)

const (
	sseChannelBuffer = 64
	defaultHeartbeat = 30 * time.Second
)

// event is one SSE message.
type event struct {
	Name string
	Data []byte
}

// cellEvent is the payload of a "cell" event.
type cellEvent struct {
	Ref   string `json:"ref"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
}

// focusEvent is the payload of a "focus" event. Ref is empty when focus was cleared.
type focusEvent struct {
	Ref      string `json:"ref"`
	Previous string `json:"previous,omitempty"`
}

// client is a single SSE connection.
type client struct {
	id string
	ch chan event
}

// Broadcaster fans grid notifications out to SSE clients. It implements
// xlgrid.Listener.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[string]*client
	logger  *zap.Logger
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster(logger *zap.Logger) *Broadcaster {
	return &Broadcaster{
		clients: make(map[string]*client),
		logger:  logger,
	}
}

// Register adds a client and returns it.
func (b *Broadcaster) Register() *client {
	c := &client{
		id: uuid.NewString(),
		ch: make(chan event, sseChannelBuffer),
	}
	b.mu.Lock()
	b.clients[c.id] = c
	b.mu.Unlock()
	return c
}

// Unregister removes a client and closes its channel.
func (b *Broadcaster) Unregister(c *client) {
	b.mu.Lock()
	if _, ok := b.clients[c.id]; ok {
		delete(b.clients, c.id)
		close(c.ch)
	}
	b.mu.Unlock()
}

// CloseAll disconnects every client.
func (b *Broadcaster) CloseAll() {
	b.mu.Lock()
	for id, c := range b.clients {
		delete(b.clients, id)
		close(c.ch)
	}
	b.mu.Unlock()
}

// ClientCount returns the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Broadcast sends an event to every client without blocking.
func (b *Broadcaster) Broadcast(name string, payload any) {
	ev, ok := b.encode(name, payload)
	if !ok {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, c := range b.clients {
		b.deliver(c, ev)
	}
}

// SendTo sends an event to a single registered client without blocking.
func (b *Broadcaster) SendTo(c *client, name string, payload any) {
	ev, ok := b.encode(name, payload)
	if !ok {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if _, registered := b.clients[c.id]; registered {
		b.deliver(c, ev)
	}
}

func (b *Broadcaster) encode(name string, payload any) (event, bool) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("marshal event", zap.String("event", name), zap.Error(err))
		return event{}, false
	}
	return event{Name: name, Data: data}, true
}

// deliver must be called with b.mu held.
func (b *Broadcaster) deliver(c *client, ev event) {
	select {
	case c.ch <- ev:
	default:
		// Channel full, skip slow client.
		b.logger.Debug("dropped event for slow client", zap.String("client", c.id), zap.String("event", ev.Name))
	}
}

// CellChanged implements xlgrid.Listener.
func (b *Broadcaster) CellChanged(change xlgrid.CellChange) {
	b.Broadcast("cell", cellEvent{
		Ref:   change.Ref.Label(),
		Row:   change.Ref.Row,
		Col:   change.Ref.Col,
		Value: change.NewValue,
	})
}

// FocusChanged implements xlgrid.Listener.
func (b *Broadcaster) FocusChanged(change xlgrid.FocusChange) {
	ev := focusEvent{Ref: change.Label()}
	if change.HadPrevious {
		ev.Previous = change.Previous.Label()
	}
	b.Broadcast("focus", ev)
}

// ServeSSE streams events to one client until the request ends or the
// broadcaster drops the client. onConnect may queue initial events.
func (b *Broadcaster) ServeSSE(w http.ResponseWriter, r *http.Request, heartbeat time.Duration, onConnect func(c *client)) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	c := b.Register()
	defer b.Unregister(c)

	log := b.logger.With(zap.String("client", c.id))
	log.Debug("sse client connected")
	defer log.Debug("sse client disconnected")

	if onConnect != nil {
		onConnect(c)
	}
	fmt.Fprintf(w, ": connected %s\n\n", c.id)
	flusher.Flush()

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-c.ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, ev.Data)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}
