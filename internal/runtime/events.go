package runtime

import "github.com/korjavin/gomoku-arena/internal/board"

// EventType names one of the ordered events a move can produce, per
// spec.md §4.C "event ordering guarantees": move_made, then (if the AI
// replies) ai_thinking, then ai_move, then optionally game_over.
type EventType string

const (
	EventMoveMade  EventType = "move_made"
	EventAIThinking EventType = "ai_thinking"
	EventAIMove    EventType = "ai_move"
	EventGameOver  EventType = "game_over"
	EventReset     EventType = "game_reset"
)

// Event is one broadcast-worthy occurrence inside a room. Broadcaster
// implementations (internal/wsconn) serialize it to the wire format their
// clients expect.
type Event struct {
	Type        EventType
	RoomID      string
	Move        *board.Position
	Symbol      board.Symbol
	WinningLine []board.Position
	Winner      board.Symbol
	Banner      string
	MoveNumber  int
}

// Broadcaster fans an Event out to every socket attached to RoomID. The
// Runtime depends only on this interface, not on internal/wsconn, keeping
// the event loop free of any socket-framing concern — the same separation
// hub.go blurs (broadcastToGame reaches directly into client.send) but
// which this module splits out so the orchestrator stays testable without
// a live websocket.
type Broadcaster interface {
	BroadcastToRoom(roomID string, event Event)
}

// NopBroadcaster discards every event; useful for tests and for the HTTP
// API before any websocket attaches to a room.
type NopBroadcaster struct{}

func (NopBroadcaster) BroadcastToRoom(string, Event) {}
