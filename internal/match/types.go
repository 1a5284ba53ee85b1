// Package match holds the pure data model and mutators for players, rooms,
// and games: the identities, symbol assignment, and per-room session state
// described in spec.md §3/§4.C. It has no knowledge of sockets, HTTP, or the
// registry; those layers call into it.
package match

import (
	"time"

	"github.com/google/uuid"

	"github.com/korjavin/gomoku-arena/internal/board"
)

// Status is the Game state-machine position.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusPlaying   Status = "playing"
	StatusWon       Status = "won"
	StatusDrawn     Status = "drawn"
	StatusAbandoned Status = "abandoned"
)

// Kind distinguishes a human player from the always-on AI opponent.
type Kind string

const (
	KindHuman Kind = "human"
	KindAI    Kind = "ai"
)

// RoomKind distinguishes the one reachable room shape from the deprecated
// multi-party shape carried only for forward compatibility (spec.md Open
// Questions: no reachable entry point builds a multiplayer turn loop).
type RoomKind string

const (
	RoomKindVsAI       RoomKind = "human-vs-ai"
	RoomKindMultiParty RoomKind = "multi-party"
)

// Move is one placed stone.
type Move struct {
	Row       int          `json:"row"`
	Col       int          `json:"col"`
	Symbol    board.Symbol `json:"symbol"`
	Number    int          `json:"moveNumber"`
	Timestamp time.Time    `json:"timestamp"`
}

// Player is one participant in a Game.
type Player struct {
	ID           string
	Symbol       board.Symbol
	Kind         Kind
	SocketID     string
	JoinedAt     time.Time
	Connected    bool
	LastActivity time.Time
}

// Game is one playthrough: board, turn, status, history, and players.
type Game struct {
	ID           string
	Board        board.Board
	Turn         board.Symbol
	Status       Status
	Winner       board.Symbol
	Moves        []Move
	Players      []*Player
	CreatedAt    time.Time
	LastActivity time.Time
	WinningLine  []board.Position
}

// WinStats tracks the vs-AI win-streak milestones described in spec.md
// §4.C update-win-stats.
type WinStats struct {
	HumanWins            int
	AIWins               int
	Draws                int
	ConsecutiveHumanWins int
}

// Room owns exactly one Game and is the addressing unit for socket
// broadcast (spec.md §3).
type Room struct {
	ID           string
	Kind         RoomKind
	Game         *Game
	MaxPlayers   int
	CreatedAt    time.Time
	LastActivity time.Time
	AutoReapAt   time.Time
	Stats        WinStats
}

// NewPlayerID and NewGameID/NewRoomCode are kept distinct because room codes
// have a human-facing short form (spec.md §3: three letters + three digits)
// while every other identifier is a UUID, matching the teacher's use of
// uuid.New().String() for challenge/game/lobby IDs in hub.go.
func NewPlayerID() string { return uuid.New().String() }
func NewGameID() string   { return uuid.New().String() }

// NewHuman creates a human player. The symbol is assigned by the caller
// (see AssignSymbolsVsAI) since it depends on the opponent's preference.
func NewHuman(symbol board.Symbol) *Player {
	now := time.Now()
	return &Player{
		ID:           NewPlayerID(),
		Symbol:       symbol,
		Kind:         KindHuman,
		JoinedAt:     now,
		Connected:    false,
		LastActivity: now,
	}
}

// NewAI creates the always-on AI opponent.
func NewAI(symbol board.Symbol) *Player {
	now := time.Now()
	return &Player{
		ID:           NewPlayerID(),
		Symbol:       symbol,
		Kind:         KindAI,
		Connected:    true,
		JoinedAt:     now,
		LastActivity: now,
	}
}

// AssignSymbolsVsAI decides who plays Black (first move) and who plays
// White for a new vs-AI game, honoring the human's preference when given.
// Per spec.md §4.C: if the human prefers White, the AI plays Black and
// moves first; otherwise the human plays Black and moves first.
func AssignSymbolsVsAI(preference board.Symbol) (human, ai board.Symbol) {
	if preference == board.White {
		return board.White, board.Black
	}
	return board.Black, board.White
}

// AddFailure enumerates why add-player was rejected.
type AddFailure string

const (
	AddOK             AddFailure = ""
	RoomFull          AddFailure = "room-full"
	SymbolTaken       AddFailure = "symbol-taken"
	DuplicateKindVsAI AddFailure = "duplicate-kind-in-vs-ai"
)

// AddPlayer adds a player to the room's current game, enforcing the
// invariants from spec.md §3: distinct symbols, exactly one human and one
// AI in a vs-AI room.
func AddPlayer(r *Room, p *Player) AddFailure {
	g := r.Game
	if len(g.Players) >= r.MaxPlayers {
		return RoomFull
	}
	for _, existing := range g.Players {
		if existing.Symbol == p.Symbol {
			return SymbolTaken
		}
		if r.Kind == RoomKindVsAI && existing.Kind == p.Kind {
			return DuplicateKindVsAI
		}
	}
	g.Players = append(g.Players, p)
	return AddOK
}

// RemoveResult reports what happened to the room after a player left.
type RemoveResult struct {
	CleanupRequested bool
}

// RemovePlayer removes the player with id from the room's game. When a
// human leaves a vs-AI room, it reports CleanupRequested rather than
// deleting the room; the Reaper removes the room once ShouldCleanup finds
// no connected human left.
func RemovePlayer(r *Room, id string) RemoveResult {
	g := r.Game
	for i, p := range g.Players {
		if p.ID != id {
			continue
		}
		wasHuman := p.Kind == KindHuman
		g.Players = append(g.Players[:i], g.Players[i+1:]...)
		if r.Kind == RoomKindVsAI && wasHuman {
			return RemoveResult{CleanupRequested: true}
		}
		return RemoveResult{}
	}
	return RemoveResult{}
}

// WinMilestoneEvery is the consecutive-human-win streak length that
// triggers a milestone banner (and every subsequent multiple of it).
const WinMilestoneEvery = 5

// UpdateWinStats records the outcome of a finished game. humanSymbol
// identifies which symbol the human player held, so the right counter is
// incremented. It returns the milestone banner text when the streak just
// crossed a multiple of WinMilestoneEvery, or "" otherwise.
func UpdateWinStats(r *Room, winner, humanSymbol board.Symbol) (milestone bool, banner string) {
	switch {
	case winner == board.Empty:
		r.Stats.Draws++
		r.Stats.ConsecutiveHumanWins = 0
	case winner == humanSymbol:
		r.Stats.HumanWins++
		r.Stats.ConsecutiveHumanWins++
	default:
		r.Stats.AIWins++
		r.Stats.ConsecutiveHumanWins = 0
	}

	if r.Stats.ConsecutiveHumanWins > 0 && r.Stats.ConsecutiveHumanWins%WinMilestoneEvery == 0 {
		return true, winStreakBanner(r.Stats.ConsecutiveHumanWins)
	}
	return false, ""
}

func winStreakBanner(streak int) string {
	if streak == WinMilestoneEvery {
		return "Five in a row against the AI, five times in a row! On fire."
	}
	return "Still unbeaten against the AI — another five-game streak."
}

// ResetGameInRoom replaces the room's Game with a fresh one, preserving the
// players slice (reattached, not recreated) and the win-stats, per
// spec.md §4.C reset-game-in-room.
func ResetGameInRoom(r *Room) {
	players := r.Game.Players
	first := board.Black
	for _, p := range players {
		p.LastActivity = time.Now()
	}

	r.Game = &Game{
		ID:           NewGameID(),
		Board:        board.New(),
		Turn:         first,
		Status:       StatusPlaying,
		Winner:       board.Empty,
		Players:      players,
		CreatedAt:    time.Now(),
		LastActivity: time.Now(),
	}
}

// ShouldCleanup reports whether a room is eligible for reaping, per
// spec.md §4.C should-cleanup: past its auto-reap deadline, with no
// connected human left, or terminal and idle for more than 5 minutes.
func ShouldCleanup(r *Room, now time.Time) bool {
	if !r.AutoReapAt.IsZero() && now.After(r.AutoReapAt) {
		return true
	}
	if !hasConnectedHuman(r.Game) {
		return true
	}
	if (r.Game.Status == StatusWon || r.Game.Status == StatusDrawn) &&
		now.Sub(r.Game.LastActivity) > 5*time.Minute {
		return true
	}
	return false
}

func hasConnectedHuman(g *Game) bool {
	for _, p := range g.Players {
		if p.Kind == KindHuman && p.Connected {
			return true
		}
	}
	return false
}

// FindPlayer returns the player with id, if present.
func FindPlayer(g *Game, id string) (*Player, bool) {
	for _, p := range g.Players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// OpponentOf returns the other player in a two-player game.
func OpponentOf(g *Game, id string) (*Player, bool) {
	for _, p := range g.Players {
		if p.ID != id {
			return p, true
		}
	}
	return nil, false
}
