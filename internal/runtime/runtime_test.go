package runtime

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korjavin/gomoku-arena/internal/ai"
	"github.com/korjavin/gomoku-arena/internal/applog"
	"github.com/korjavin/gomoku-arena/internal/board"
	"github.com/korjavin/gomoku-arena/internal/match"
	"github.com/korjavin/gomoku-arena/internal/registry"
)

// recordingBroadcaster collects every event for assertions instead of
// talking to real sockets.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingBroadcaster) BroadcastToRoom(roomID string, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingBroadcaster) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func newTestRuntime(t *testing.T) (*Runtime, *recordingBroadcaster, context.CancelFunc) {
	t.Helper()
	reg := registry.New()
	engine := ai.NewEngine()
	engine.Deadline = 100 * time.Millisecond
	bc := &recordingBroadcaster{}
	rt := New(reg, engine, bc, applog.New(applog.LevelError))

	ctx, cancel := context.WithCancel(context.Background())
	go rt.Run(ctx)
	return rt, bc, cancel
}

func TestQuickStartAndGetState(t *testing.T) {
	rt, _, cancel := newTestRuntime(t)
	defer cancel()

	room, err := rt.QuickStart(board.Empty)
	require.Nil(t, err)
	require.NotNil(t, room)

	got, err := rt.GetState(room.ID)
	require.Nil(t, err)
	assert.Equal(t, room.ID, got.ID)
}

func TestMakeMoveRejectsOutOfTurn(t *testing.T) {
	rt, _, cancel := newTestRuntime(t)
	defer cancel()

	room, _ := rt.QuickStart(board.White) // human plays White, AI plays Black and moves first
	human, _ := match.HumanPlayer(room.Game)

	_, err := rt.MakeMove(room.ID, human.ID, 0, 0)
	require.NotNil(t, err)
	assert.Equal(t, "unprocessable", string(err.Code))
}

func TestMakeMoveTriggersAIReplyEventually(t *testing.T) {
	rt, bc, cancel := newTestRuntime(t)
	defer cancel()

	room, _ := rt.QuickStart(board.Empty) // human plays Black and moves first
	human, _ := match.HumanPlayer(room.Game)

	_, err := rt.MakeMove(room.ID, human.ID, 7, 7)
	require.Nil(t, err)

	require.Eventually(t, func() bool {
		state, _ := rt.GetState(room.ID)
		return len(state.Game.Moves) == 2
	}, 2*time.Second, 10*time.Millisecond, "AI should have replied")

	types := bc.types()
	assert.Contains(t, types, EventMoveMade)
	assert.Contains(t, types, EventAIThinking)
	assert.Contains(t, types, EventAIMove)

	// move_made (human) must come before ai_thinking, which must come
	// before ai_move, per spec.md §4.E's event-ordering invariant.
	moveIdx, thinkingIdx, aiMoveIdx := -1, -1, -1
	for i, et := range types {
		switch et {
		case EventMoveMade:
			if moveIdx == -1 {
				moveIdx = i
			}
		case EventAIThinking:
			if thinkingIdx == -1 {
				thinkingIdx = i
			}
		case EventAIMove:
			if aiMoveIdx == -1 {
				aiMoveIdx = i
			}
		}
	}
	assert.True(t, moveIdx < thinkingIdx && thinkingIdx < aiMoveIdx, "expected move_made < ai_thinking < ai_move, got %v", types)
}

func TestMakeMoveRejectsUnseatedPlayer(t *testing.T) {
	rt, _, cancel := newTestRuntime(t)
	defer cancel()

	room, _ := rt.QuickStart(board.Empty)
	_, err := rt.MakeMove(room.ID, "not-a-player", 0, 0)
	require.NotNil(t, err)
	assert.Equal(t, "not_found", string(err.Code))
}

func TestResetPreservesPlayers(t *testing.T) {
	rt, _, cancel := newTestRuntime(t)
	defer cancel()

	room, _ := rt.QuickStart(board.Empty)
	human, _ := match.HumanPlayer(room.Game)
	_, err := rt.MakeMove(room.ID, human.ID, 7, 7)
	require.Nil(t, err)

	reset, err := rt.Reset(room.ID)
	require.Nil(t, err)
	assert.Len(t, reset.Game.Moves, 0)
	assert.Len(t, reset.Game.Players, 2)
}

func TestEndGameMarksPlayerDisconnectedWithoutRemovingRoom(t *testing.T) {
	rt, _, cancel := newTestRuntime(t)
	defer cancel()

	room, _ := rt.QuickStart(board.Empty)
	human, _ := match.HumanPlayer(room.Game)

	err := rt.EndGame(room.ID, human.ID)
	require.Nil(t, err)

	// The seat stays reserved: the room still resolves and the player is
	// still present, just marked disconnected, so a reconnect within the
	// reap window recovers the same game (spec.md §4.E).
	state, err := rt.GetState(room.ID)
	require.Nil(t, err)
	player, ok := match.FindPlayer(state.Game, human.ID)
	require.True(t, ok)
	assert.False(t, player.Connected)
	assert.Len(t, state.Game.Players, 2)
}

func TestGetStateNotFound(t *testing.T) {
	rt, _, cancel := newTestRuntime(t)
	defer cancel()

	_, err := rt.GetState("no-such-room")
	require.NotNil(t, err)
	assert.Equal(t, "not_found", string(err.Code))
}
