package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korjavin/gomoku-arena/internal/board"
)

func TestAssignSymbolsVsAI(t *testing.T) {
	human, ai := AssignSymbolsVsAI(board.Empty)
	assert.Equal(t, board.Black, human)
	assert.Equal(t, board.White, ai)

	human, ai = AssignSymbolsVsAI(board.White)
	assert.Equal(t, board.White, human)
	assert.Equal(t, board.Black, ai)
}

func TestNewVsAIRoomHasDistinctSymbolsAndOneOfEachKind(t *testing.T) {
	r := NewVsAIRoom("ABC123", board.Empty)

	require.Len(t, r.Game.Players, 2)
	humans, ais := 0, 0
	seen := map[board.Symbol]bool{}
	for _, p := range r.Game.Players {
		if p.Kind == KindHuman {
			humans++
		}
		if p.Kind == KindAI {
			ais++
		}
		assert.False(t, seen[p.Symbol], "symbols must be distinct")
		seen[p.Symbol] = true
	}
	assert.Equal(t, 1, humans)
	assert.Equal(t, 1, ais)
}

func TestAddPlayerRejectsFullRoom(t *testing.T) {
	r := NewVsAIRoom("ABC123", board.Empty)
	extra := NewHuman(board.Third)
	assert.Equal(t, RoomFull, AddPlayer(r, extra))
}

func TestAddPlayerRejectsDuplicateSymbol(t *testing.T) {
	r := &Room{MaxPlayers: 2, Game: &Game{}}
	p1 := NewHuman(board.Black)
	require.Equal(t, AddOK, AddPlayer(r, p1))
	p2 := NewAI(board.Black)
	assert.Equal(t, SymbolTaken, AddPlayer(r, p2))
}

func TestRemovePlayerFromVsAIRoomRequestsCleanup(t *testing.T) {
	r := NewVsAIRoom("ABC123", board.Empty)
	human, _ := HumanPlayer(r.Game)

	result := RemovePlayer(r, human.ID)
	assert.True(t, result.CleanupRequested)
	assert.Len(t, r.Game.Players, 1)
}

func TestUpdateWinStatsMilestone(t *testing.T) {
	r := &Room{}
	for i := 0; i < 4; i++ {
		milestone, _ := UpdateWinStats(r, board.Black, board.Black)
		assert.False(t, milestone)
	}
	milestone, banner := UpdateWinStats(r, board.Black, board.Black)
	assert.True(t, milestone)
	assert.NotEmpty(t, banner)
	assert.Equal(t, 5, r.Stats.ConsecutiveHumanWins)
}

func TestUpdateWinStatsResetsStreakOnAIWin(t *testing.T) {
	r := &Room{}
	UpdateWinStats(r, board.Black, board.Black)
	UpdateWinStats(r, board.White, board.Black)
	assert.Equal(t, 0, r.Stats.ConsecutiveHumanWins)
	assert.Equal(t, 1, r.Stats.AIWins)
}

func TestResetGameInRoomIsIdempotentOnWinStats(t *testing.T) {
	r := NewVsAIRoom("ABC123", board.Empty)
	UpdateWinStats(r, board.Black, board.Black)
	before := r.Stats

	ResetGameInRoom(r)
	ResetGameInRoom(r)

	assert.Equal(t, before, r.Stats)
	assert.Len(t, r.Game.Players, 2, "players survive a reset")
	assert.Equal(t, board.Empty, r.Game.Board.At(7, 7))
}

func TestShouldCleanupNoConnectedHuman(t *testing.T) {
	r := NewVsAIRoom("ABC123", board.Empty)
	r.AutoReapAt = time.Now().Add(time.Hour)
	r.Game.Status = StatusPlaying
	assert.True(t, ShouldCleanup(r, time.Now()), "no human ever connected")
}

func TestShouldCleanupTerminalIdle(t *testing.T) {
	r := NewVsAIRoom("ABC123", board.Empty)
	r.AutoReapAt = time.Now().Add(time.Hour)
	human, _ := HumanPlayer(r.Game)
	human.Connected = true
	r.Game.Status = StatusWon
	r.Game.LastActivity = time.Now().Add(-10 * time.Minute)
	assert.True(t, ShouldCleanup(r, time.Now()))
}

func TestShouldCleanupFalseWhilePlayingAndConnected(t *testing.T) {
	r := NewVsAIRoom("ABC123", board.Empty)
	r.AutoReapAt = time.Now().Add(time.Hour)
	human, _ := HumanPlayer(r.Game)
	human.Connected = true
	r.Game.Status = StatusPlaying
	r.Game.LastActivity = time.Now()
	assert.False(t, ShouldCleanup(r, time.Now()))
}
