package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korjavin/gomoku-arena/internal/board"
	"github.com/korjavin/gomoku-arena/internal/match"
)

func TestPutIndexesPlayers(t *testing.T) {
	reg := New()
	room := match.NewVsAIRoom("ABC123", board.Empty)
	reg.Put(room)

	human, _ := match.HumanPlayer(room.Game)
	got, ok := reg.RoomForPlayer(human.ID)
	require.True(t, ok)
	assert.Equal(t, room.ID, got.ID)
}

func TestBindAndUnbindSocket(t *testing.T) {
	reg := New()
	room := match.NewVsAIRoom("ABC123", board.Empty)
	reg.Put(room)
	human, _ := match.HumanPlayer(room.Game)

	reg.BindSocket("sock-1", human.ID, room.ID)
	got, ok := reg.RoomForSocket("sock-1")
	require.True(t, ok)
	assert.Equal(t, room.ID, got.ID)

	user, ok := reg.UserForSocket("sock-1")
	require.True(t, ok)
	assert.Equal(t, human.ID, user)

	reg.UnbindSocket("sock-1")
	_, ok = reg.RoomForSocket("sock-1")
	assert.False(t, ok)

	// The room and its player index survive an unbind.
	_, ok = reg.RoomForPlayer(human.ID)
	assert.True(t, ok)
}

func TestRemoveClearsAllReverseLookups(t *testing.T) {
	reg := New()
	room := match.NewVsAIRoom("ABC123", board.Empty)
	reg.Put(room)
	human, _ := match.HumanPlayer(room.Game)
	reg.BindSocket("sock-1", human.ID, room.ID)

	reg.Remove(room.ID)

	_, ok := reg.Room(room.ID)
	assert.False(t, ok)
	_, ok = reg.RoomForPlayer(human.ID)
	assert.False(t, ok)
	_, ok = reg.RoomForSocket("sock-1")
	assert.False(t, ok)
}

func TestRoomExistsForCollisionCheck(t *testing.T) {
	reg := New()
	assert.False(t, reg.RoomExists("ABC123"))
	reg.Put(match.NewVsAIRoom("ABC123", board.Empty))
	assert.True(t, reg.RoomExists("ABC123"))
}

func TestSnapshotAndLen(t *testing.T) {
	reg := New()
	reg.Put(match.NewVsAIRoom("AAA111", board.Empty))
	reg.Put(match.NewVsAIRoom("BBB222", board.Empty))

	assert.Equal(t, 2, reg.Len())
	assert.Len(t, reg.Snapshot(), 2)
}
