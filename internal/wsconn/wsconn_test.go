package wsconn

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korjavin/gomoku-arena/internal/ai"
	"github.com/korjavin/gomoku-arena/internal/applog"
	"github.com/korjavin/gomoku-arena/internal/board"
	"github.com/korjavin/gomoku-arena/internal/match"
	"github.com/korjavin/gomoku-arena/internal/registry"
	"github.com/korjavin/gomoku-arena/internal/runtime"
)

func TestTerminalMessagesAreNeverDropped(t *testing.T) {
	assert.True(t, terminal("game_over"))
	assert.True(t, terminal("error"))
	assert.False(t, terminal("ai_thinking"))
}

func TestAttachUpgradesAndDeliversBroadcast(t *testing.T) {
	reg := registry.New()
	room := match.NewVsAIRoom("ABC123", board.Empty)
	reg.Put(room)
	human, _ := match.HumanPlayer(room.Game)

	engine := ai.NewEngine()
	log := applog.New(applog.LevelError)
	rt := runtime.New(reg, engine, runtime.NopBroadcaster{}, log)

	hub := New(reg, rt, log)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/gomoku/{roomId}", hub.ServeHTTP(func(*http.Request) bool { return true }))
	server := httptest.NewServer(mux)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/gomoku/ABC123?playerId=" + human.ID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.rooms["ABC123"]) == 1
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom("ABC123", runtime.Event{Type: runtime.EventMoveMade, RoomID: "ABC123"})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(payload), "move_made")
}

func TestAttachRejectsMissingRoom(t *testing.T) {
	reg := registry.New()
	engine := ai.NewEngine()
	log := applog.New(applog.LevelError)
	rt := runtime.New(reg, engine, runtime.NopBroadcaster{}, log)
	hub := New(reg, rt, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/gomoku/{roomId}", hub.ServeHTTP(func(*http.Request) bool { return true }))
	server := httptest.NewServer(mux)
	defer server.Close()

	resp, err := http.Get(server.URL + "/ws/gomoku/nope?playerId=nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
