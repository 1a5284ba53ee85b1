package wsconn

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
)

// upgrader follows backend/main.go's pattern of an unexported
// http.HandleFunc wrapping a gorilla/websocket upgrade; CheckOrigin is
// supplied by the caller since the allowed-origins list is environment
// configuration (internal/config), not a socket-layer concern.
func newUpgrader(checkOrigin func(*http.Request) bool) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin,
	}
}

// ServeHTTP upgrades the connection for the game channel at
// /ws/gomoku/{roomId}?playerId=…&gameId=…, per spec.md §6. roomId comes
// from the path; playerId (and the redundant gameId, which is always the
// same value as roomId — see DESIGN.md) are query parameters.
func (h *Hub) ServeHTTP(checkOrigin func(*http.Request) bool) http.HandlerFunc {
	upgrader := newUpgrader(checkOrigin)
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := r.PathValue("roomId")
		playerID := r.URL.Query().Get("playerId")
		if roomID == "" || playerID == "" {
			http.Error(w, "roomId and playerId are required", http.StatusBadRequest)
			return
		}
		if _, ok := h.reg.Room(roomID); !ok {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warnf("websocket upgrade failed: %v", err)
			return
		}
		h.Attach(conn, roomID, playerID)
	}
}

func unmarshalData(raw json.RawMessage, v any) error {
	return json.Unmarshal(raw, v)
}
