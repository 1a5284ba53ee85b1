package wsconn

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/korjavin/gomoku-arena/internal/applog"
	"github.com/korjavin/gomoku-arena/internal/board"
	"github.com/korjavin/gomoku-arena/internal/match"
	"github.com/korjavin/gomoku-arena/internal/registry"
	"github.com/korjavin/gomoku-arena/internal/runtime"
)

// Hub fans out Runtime events to every socket attached to a room, and
// tracks presence so a reconnecting player swaps in a new socket without
// losing their seat — the generalization of hub.go's handleConnect, which
// replaces an existing user's client on reconnect rather than rejecting
// the new connection.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]bool

	reg *registry.Registry
	rt  *runtime.Runtime
	log *applog.Logger
}

// New constructs a Hub bound to reg (for socket<->room<->player
// resolution) and rt (for dispatching client moves).
func New(reg *registry.Registry, rt *runtime.Runtime, log *applog.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]bool),
		reg:   reg,
		rt:    rt,
		log:   log,
	}
}

// Attach registers a new connection for roomID/playerID, starts its pumps,
// and marks the player connected. Per spec.md §4.F reconnection handling,
// an existing socket for the same player is closed first so exactly one
// socket ever represents a seat.
func (h *Hub) Attach(conn *websocket.Conn, roomID, playerID string) {
	socketID := match.NewPlayerID()
	h.evictExisting(roomID, playerID)

	c := newClient(conn, roomID, playerID, socketID, h.log)

	h.mu.Lock()
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][c] = true
	h.mu.Unlock()

	h.reg.BindSocket(socketID, playerID, roomID)
	h.setConnected(roomID, playerID, true)

	go c.writePump()
	go c.readPump(h.handleClientMessage)

	go func() {
		<-c.closed
		h.detach(c)
	}()
}

func (h *Hub) evictExisting(roomID, playerID string) {
	h.mu.RLock()
	clients := h.rooms[roomID]
	h.mu.RUnlock()
	for c := range clients {
		if c.playerID == playerID {
			c.forceClose()
		}
	}
}

func (h *Hub) detach(c *Client) {
	h.mu.Lock()
	superseded := false
	if set, ok := h.rooms[c.roomID]; ok {
		delete(set, c)
		for other := range set {
			if other.playerID == c.playerID {
				superseded = true
			}
		}
		if len(set) == 0 {
			delete(h.rooms, c.roomID)
		}
	}
	h.mu.Unlock()

	h.reg.UnbindSocket(c.socketID)
	if !superseded {
		h.setConnected(c.roomID, c.playerID, false)
	}
}

func (h *Hub) setConnected(roomID, playerID string, connected bool) {
	room, ok := h.reg.Room(roomID)
	if !ok {
		return
	}
	if p, ok := match.FindPlayer(room.Game, playerID); ok {
		p.Connected = connected
	}
}

// moveData is the payload shape for an inbound "make_move" message.
type moveData struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (h *Hub) handleClientMessage(c *Client, msg inbound) {
	switch msg.Type {
	case "make_move":
		var data moveData
		if err := unmarshalData(msg.Data, &data); err != nil {
			c.enqueue(h.errorMessage(c.roomID, "malformed move"))
			return
		}
		if _, err := h.rt.MakeMove(c.roomID, c.playerID, data.Row, data.Col); err != nil {
			c.enqueue(h.errorMessage(c.roomID, err.Message))
		}
	case "reset_game":
		if _, err := h.rt.Reset(c.roomID); err != nil {
			c.enqueue(h.errorMessage(c.roomID, err.Message))
		}
	default:
		h.log.Debugf("ignoring unknown client message type %q", msg.Type)
	}
}

// BroadcastToRoom implements runtime.Broadcaster: it fans event out to
// every socket currently attached to roomID.
func (h *Hub) BroadcastToRoom(roomID string, event runtime.Event) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[roomID]))
	for c := range h.rooms[roomID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	msg := toWireMessage(event)
	for _, c := range clients {
		c.enqueue(msg)
	}
}

func (h *Hub) errorMessage(roomID, message string) outbound {
	return outbound{
		Type:      "error",
		RoomID:    roomID,
		GameID:    roomID,
		Data:      map[string]string{"message": message},
		Timestamp: time.Now(),
	}
}

func toWireMessage(event runtime.Event) outbound {
	data := map[string]any{}
	if event.Move != nil {
		data["row"] = event.Move.Row
		data["col"] = event.Move.Col
	}
	if event.Symbol != board.Empty {
		data["symbol"] = event.Symbol.String()
	}
	if event.MoveNumber != 0 {
		data["moveNumber"] = event.MoveNumber
	}
	if len(event.WinningLine) > 0 {
		data["winningLine"] = event.WinningLine
	}
	if event.Type == runtime.EventGameOver {
		data["winner"] = event.Winner.String()
		if event.Banner != "" {
			data["banner"] = event.Banner
		}
	}
	return outbound{
		Type:      string(event.Type),
		RoomID:    event.RoomID,
		GameID:    event.RoomID,
		Data:      data,
		Timestamp: time.Now(),
	}
}
