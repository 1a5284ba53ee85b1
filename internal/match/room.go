package match

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/korjavin/gomoku-arena/internal/board"
)

var roomCodeRand = rand.New(rand.NewSource(time.Now().UnixNano()))

const roomCodeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewRoomCode generates a random three-uppercase-letter, three-digit room
// identifier (spec.md §3). Collision avoidance against existing rooms is
// the caller's responsibility (see GenerateUniqueRoomCode), mirroring the
// teacher's uuid.New() calls in hub.go which never needed a collision loop
// because a UUID collision is not worth guarding against — a six-character
// code is, so this module does.
func NewRoomCode() string {
	buf := make([]byte, 0, 6)
	for i := 0; i < 3; i++ {
		buf = append(buf, roomCodeLetters[roomCodeRand.Intn(len(roomCodeLetters))])
	}
	for i := 0; i < 3; i++ {
		buf = append(buf, byte('0'+roomCodeRand.Intn(10)))
	}
	return string(buf)
}

// GenerateUniqueRoomCode regenerates on collision, per spec.md §4.C "Room
// identifier generation must avoid collisions with existing rooms".
func GenerateUniqueRoomCode(exists func(string) bool) string {
	for {
		code := NewRoomCode()
		if !exists(code) {
			return code
		}
	}
}

// DefaultAutoReapWindow is how far in the future a freshly created room's
// auto-reap deadline is set, absent any other cleanup trigger.
const DefaultAutoReapWindow = 30 * time.Minute

// NewVsAIRoom builds a fresh human-vs-AI room: a Game already in the
// playing state, with the human and AI players assigned symbols and seated.
func NewVsAIRoom(code string, preference board.Symbol) *Room {
	humanSymbol, aiSymbol := AssignSymbolsVsAI(preference)
	human := NewHuman(humanSymbol)
	ai := NewAI(aiSymbol)

	now := time.Now()
	game := &Game{
		ID:           NewGameID(),
		Board:        board.New(),
		Turn:         board.Black,
		Status:       StatusPlaying,
		Winner:       board.Empty,
		Players:      []*Player{human, ai},
		CreatedAt:    now,
		LastActivity: now,
	}

	return &Room{
		ID:           code,
		Kind:         RoomKindVsAI,
		Game:         game,
		MaxPlayers:   2,
		CreatedAt:    now,
		LastActivity: now,
		AutoReapAt:   now.Add(DefaultAutoReapWindow),
	}
}

// HumanPlayer returns the human seat in a vs-AI room.
func HumanPlayer(g *Game) (*Player, bool) {
	for _, p := range g.Players {
		if p.Kind == KindHuman {
			return p, true
		}
	}
	return nil, false
}

// AIPlayer returns the AI seat in a vs-AI room.
func AIPlayer(g *Game) (*Player, bool) {
	for _, p := range g.Players {
		if p.Kind == KindAI {
			return p, true
		}
	}
	return nil, false
}

func (r *Room) String() string {
	return fmt.Sprintf("Room(%s, kind=%s, status=%s)", r.ID, r.Kind, r.Game.Status)
}
