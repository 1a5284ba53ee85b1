// Package wsconn is the socket fan-out layer (spec.md component F):
// per-room broadcast, presence tracking, heartbeats, and backpressure
// handling over gorilla/websocket. The read/write-pump split, the ping
// ticker, and the buffered outbound channel are grounded directly in
// backend/cmd/bot-hoster/bot_client.go's Run/writePump — the only
// gorilla/websocket client loop present anywhere in the retrieved pack,
// since the production backend's own client.go (referenced by
// backend/main.go's serveWs call) was not included in the retrieval.
package wsconn

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/korjavin/gomoku-arena/internal/applog"
)

const (
	// writeWait mirrors bot_client.go's implicit send-or-drop timeout.
	writeWait = 10 * time.Second
	// pongWait and pingPeriod follow bot_client.go's 54-second ping
	// ticker, with the pong wait set to spec.md §4.F's heartbeat-timeout
	// convention of roughly double the ping period.
	pingPeriod = 54 * time.Second
	pongWait   = 2 * pingPeriod

	// sendBufferSize bounds the per-client outbound channel; beyond this
	// the client is considered unresponsive and backpressure kicks in.
	sendBufferSize = 64
)

// outbound is the wire envelope every server-to-client message uses, per
// spec.md §6: {type, gameId?, roomId?, data, timestamp}.
type outbound struct {
	Type      string    `json:"type"`
	RoomID    string    `json:"roomId,omitempty"`
	GameID    string    `json:"gameId,omitempty"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// terminal reports whether a message type must never be dropped under
// backpressure (spec.md §4.F: "never drop terminal messages").
func terminal(msgType string) bool {
	switch msgType {
	case "game_over", "error", "room_closed":
		return true
	default:
		return false
	}
}

// Client is one live websocket connection, attached to exactly one room
// and, once identified, one player.
type Client struct {
	conn     *websocket.Conn
	send     chan outbound
	roomID   string
	playerID string
	socketID string
	log      *applog.Logger

	closed chan struct{}
}

func newClient(conn *websocket.Conn, roomID, playerID, socketID string, log *applog.Logger) *Client {
	return &Client{
		conn:     conn,
		send:     make(chan outbound, sendBufferSize),
		roomID:   roomID,
		playerID: playerID,
		socketID: socketID,
		log:      log,
		closed:   make(chan struct{}),
	}
}

// enqueue delivers msg to the client's outbound buffer, applying the
// drop-oldest-non-terminal backpressure policy from spec.md §4.F when the
// buffer is full. A full buffer with a terminal message forces the
// connection closed instead of blocking the caller (the single runtime
// goroutine), matching hub.go's sendToClient which never blocks on a
// slow reader.
func (c *Client) enqueue(msg outbound) {
	select {
	case c.send <- msg:
		return
	default:
	}

	if !terminal(msg.Type) {
		select {
		case <-c.send:
		default:
		}
		select {
		case c.send <- msg:
		default:
		}
		return
	}

	c.log.Warnf("client %s outbound buffer full on terminal message %q, closing", c.socketID, msg.Type)
	c.forceClose()
}

func (c *Client) forceClose() {
	select {
	case <-c.closed:
	default:
		close(c.closed)
		c.conn.Close()
	}
}

// writePump drains the outbound buffer onto the socket and sends periodic
// pings, following bot_client.go's writePump exactly: a select over the
// send channel, a ping ticker, and a done signal.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			payload, err := json.Marshal(msg)
			if err != nil {
				c.log.Errorf("marshal outbound message: %v", err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closed:
			return
		}
	}
}

// inbound is the wire envelope every client-to-server message uses.
type inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// readPump reads client frames until the connection errors or closes,
// dispatching each to handle. It sets the pong-triggered read deadline the
// same way bot_client.go's Run loop relies on gorilla's default pong
// handler to keep the connection alive.
func (c *Client) readPump(handle func(c *Client, msg inbound)) {
	defer func() {
		c.forceClose()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.log.Warnf("discarding malformed client message from %s: %v", c.socketID, err)
			continue
		}
		handle(c, msg)
	}
}
