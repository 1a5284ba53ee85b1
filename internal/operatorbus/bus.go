package operatorbus

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/korjavin/gomoku-arena/internal/applog"
)

// EventType enumerates the disjoint operator-facing message types
// (spec.md §4.H), kept separate from runtime.EventType since operator
// events describe webhook/order activity, not game state.
type EventType string

const (
	EventNewOrder     EventType = "new-order"
	EventOrderUpdated EventType = "order-updated"
	EventTestEvent    EventType = "test-event"
	EventPing         EventType = "ping"
	EventError        EventType = "error"
	EventConnected    EventType = "connected"
)

// Event is one message delivered to every attached operator socket.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}

// Bus holds the operator socket set, kept deliberately apart from
// internal/wsconn's per-room client sets: an operator dashboard subscribes
// to every event across all rooms rather than to one room, so it is
// addressed as a single flat set instead of a map keyed by room id.
type Bus struct {
	mu      sync.RWMutex
	sockets map[*operatorSocket]bool
	log     *applog.Logger
}

// New constructs an empty operator Bus.
func New(log *applog.Logger) *Bus {
	return &Bus{sockets: make(map[*operatorSocket]bool), log: log}
}

type operatorSocket struct {
	conn *websocket.Conn
	send chan Event
	done chan struct{}
}

// Attach registers a new operator connection and starts its write pump,
// immediately sending a "connected" acknowledgement.
func (b *Bus) Attach(conn *websocket.Conn) {
	s := &operatorSocket{conn: conn, send: make(chan Event, 32), done: make(chan struct{})}

	b.mu.Lock()
	b.sockets[s] = true
	b.mu.Unlock()

	go b.writePump(s)
	s.send <- Event{Type: EventConnected}

	go func() {
		// Operator sockets are push-only from the server's side; inbound
		// frames are read and discarded (no read deadline is set) until
		// the client disconnects or the read fails.
		defer b.detach(s)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (b *Bus) detach(s *operatorSocket) {
	b.mu.Lock()
	delete(b.sockets, s)
	b.mu.Unlock()
	close(s.done)
	s.conn.Close()
}

func (b *Bus) writePump(s *operatorSocket) {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case event := <-s.send:
			payload, err := json.Marshal(event)
			if err != nil {
				b.log.Errorf("marshal operator event: %v", err)
				continue
			}
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

// Broadcast fans event out to every attached operator socket, dropping it
// for any socket whose buffer is full rather than blocking the caller —
// operator events are diagnostic, not authoritative game state, so a slow
// dashboard must never stall webhook ingestion.
func (b *Bus) Broadcast(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for s := range b.sockets {
		select {
		case s.send <- event:
		default:
			b.log.Warnf("dropping operator event %q: socket buffer full", event.Type)
		}
	}
}

// Len reports the number of attached operator sockets.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sockets)
}
