// Package httpapi implements the REST surface spec.md §6 names:
// quick-start, move, state, reset, and delete for a room, plus health and
// status. It translates between JSON and the runtime/match/board types,
// and renders apierr.Error values as the success/error envelope spec.md
// §7 requires.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/korjavin/gomoku-arena/internal/apierr"
	"github.com/korjavin/gomoku-arena/internal/board"
	"github.com/korjavin/gomoku-arena/internal/match"
	"github.com/korjavin/gomoku-arena/internal/registry"
	"github.com/korjavin/gomoku-arena/internal/runtime"
)

// API bundles the dependencies every handler needs.
type API struct {
	rt        *runtime.Runtime
	reg       *registry.Registry
	startedAt time.Time
}

// New constructs an API.
func New(rt *runtime.Runtime, reg *registry.Registry) *API {
	return &API{rt: rt, reg: reg, startedAt: time.Now()}
}

type envelope struct {
	Success bool    `json:"success"`
	Data    any     `json:"data,omitempty"`
	Error   *apiErr `json:"error,omitempty"`
}

type apiErr struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, err *apierr.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code.HTTPStatus())
	json.NewEncoder(w).Encode(envelope{Success: false, Error: &apiErr{Code: string(err.Code), Message: err.Message}})
}

// roomView is the JSON shape returned for a room/game, independent of the
// internal match.Room representation. It also serves as the body of
// quick-start's gameState field (spec.md §6 scenario 1).
type roomView struct {
	RoomID        string           `json:"roomId"`
	GameID        string           `json:"gameId"`
	Status        string           `json:"status"`
	Turn          string           `json:"turn"`
	CurrentPlayer string           `json:"currentPlayer"`
	Winner        string           `json:"winner,omitempty"`
	Board         [][]*string      `json:"board"`
	Moves         int              `json:"moveCount"`
	WinningLine   []board.Position `json:"winningLine,omitempty"`
	Stats         match.WinStats   `json:"stats"`
	Players       []playerView     `json:"players"`
}

type playerView struct {
	ID        string `json:"id"`
	Symbol    string `json:"symbol"`
	Kind      string `json:"kind"`
	Connected bool   `json:"connected"`
}

// renderRoom renders an empty cell as JSON null rather than "", per
// spec.md §6 scenario 1 ("board all nulls").
func renderRoom(r *match.Room) roomView {
	rows := make([][]*string, board.Size)
	for i := 0; i < board.Size; i++ {
		row := make([]*string, board.Size)
		for j := 0; j < board.Size; j++ {
			if sym := r.Game.Board.At(i, j); sym != board.Empty {
				s := sym.String()
				row[j] = &s
			}
		}
		rows[i] = row
	}

	players := make([]playerView, len(r.Game.Players))
	for i, p := range r.Game.Players {
		players[i] = playerView{ID: p.ID, Symbol: p.Symbol.String(), Kind: string(p.Kind), Connected: p.Connected}
	}

	return roomView{
		RoomID:        r.ID,
		GameID:        r.ID,
		Status:        string(r.Game.Status),
		Turn:          r.Game.Turn.String(),
		CurrentPlayer: r.Game.Turn.String(),
		Winner:        r.Game.Winner.String(),
		Board:         rows,
		Moves:         len(r.Game.Moves),
		WinningLine:   r.Game.WinningLine,
		Stats:         r.Stats,
		Players:       players,
	}
}
