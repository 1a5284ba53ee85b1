package runtime

import (
	"time"

	"github.com/korjavin/gomoku-arena/internal/apierr"
	"github.com/korjavin/gomoku-arena/internal/board"
	"github.com/korjavin/gomoku-arena/internal/match"
)

// QuickStart creates a new vs-AI room and returns it, per spec.md §4.C
// quick-start. It is synchronous: the caller blocks until the event loop
// has created and registered the room.
func (rt *Runtime) QuickStart(preference board.Symbol) (*match.Room, *apierr.Error) {
	reply := make(chan response, 1)
	rt.requests <- request{kind: opQuickStart, preference: preference, reply: reply}
	res := <-reply
	return res.room, res.err
}

func (rt *Runtime) handleQuickStart(req request) {
	code := match.GenerateUniqueRoomCode(rt.reg.RoomExists)
	room := match.NewVsAIRoom(code, req.preference)
	rt.reg.Put(room)
	req.reply <- response{room: room}
}

// MakeMove validates and applies a human move, then — if the game is
// still playing and it is now the AI's turn — asynchronously invokes the
// AI search and feeds its result back through the event loop, mirroring
// hub.go's handleBotMoveRequest/handleBotMoveResult split between
// "spawn the CPU-heavy search on its own goroutine" and "apply its result
// back on the single mutator goroutine".
func (rt *Runtime) MakeMove(roomID, playerID string, row, col int) (*match.Room, *apierr.Error) {
	reply := make(chan response, 1)
	rt.requests <- request{kind: opMakeMove, roomID: roomID, playerID: playerID, row: row, col: col, reply: reply}
	res := <-reply
	return res.room, res.err
}

func (rt *Runtime) handleMakeMove(req request) {
	room, ok := rt.reg.Room(req.roomID)
	if !ok {
		req.reply <- response{err: apierr.NotFound("room not found")}
		return
	}
	game := room.Game
	player, ok := match.FindPlayer(game, req.playerID)
	if !ok {
		req.reply <- response{err: apierr.NotFound("player is not seated in this room")}
		return
	}

	if failure := board.Validate(game.Board, req.row, req.col, player.Symbol, game.Turn, board.Status(game.Status)); failure != board.OK {
		req.reply <- response{err: validationError(failure)}
		return
	}

	rt.applyMove(room, player.Symbol, req.row, req.col, EventMoveMade)
	req.reply <- response{room: room}

	rt.maybeTriggerAI(room)
}

// applyMove places a stone, appends it to history, and resolves a win or
// draw. It broadcasts moveEvent (move_made for a human mover, ai_move for
// the AI) and, if the move was terminal, broadcasts game_over afterward —
// per spec.md §4.E/§5, ai_move must strictly precede game_over.
func (rt *Runtime) applyMove(room *match.Room, symbol board.Symbol, row, col int, moveEvent EventType) {
	game := room.Game
	game.Board = board.Apply(game.Board, row, col, symbol)
	number := len(game.Moves) + 1
	game.Moves = append(game.Moves, match.Move{Row: row, Col: col, Symbol: symbol, Number: number})
	now := time.Now()
	game.LastActivity = now
	room.LastActivity = now

	pos := board.Position{Row: row, Col: col}
	rt.broadcaster.BroadcastToRoom(room.ID, Event{
		Type: moveEvent, RoomID: room.ID, Move: &pos, Symbol: symbol, MoveNumber: number,
	})

	if line, won := board.CheckWin(game.Board, row, col, symbol); won {
		rt.finishGame(room, symbol, line)
		return
	}
	if game.Board.IsFull() {
		rt.finishGame(room, board.Empty, nil)
		return
	}
	game.Turn = symbol.Opponent()
}

func (rt *Runtime) finishGame(room *match.Room, winner board.Symbol, line []board.Position) {
	game := room.Game
	if winner == board.Empty {
		game.Status = match.StatusDrawn
	} else {
		game.Status = match.StatusWon
	}
	game.Winner = winner
	game.WinningLine = line

	human, _ := match.HumanPlayer(game)
	_, banner := match.UpdateWinStats(room, winner, human.Symbol)

	rt.broadcaster.BroadcastToRoom(room.ID, Event{
		Type: EventGameOver, RoomID: room.ID, Winner: winner, WinningLine: line, Banner: banner,
	})
}

// maybeTriggerAI spawns the AI search on its own goroutine when it is the
// AI's turn in a still-playing game, and feeds the result back through the
// event loop as an opAIResult request — never touching room state from
// the search goroutine itself.
func (rt *Runtime) maybeTriggerAI(room *match.Room) {
	game := room.Game
	if game.Status != match.StatusPlaying {
		return
	}
	aiPlayer, ok := match.AIPlayer(game)
	if !ok || aiPlayer.Symbol != game.Turn {
		return
	}

	rt.broadcaster.BroadcastToRoom(room.ID, Event{Type: EventAIThinking, RoomID: room.ID})

	b := game.Board
	symbol := aiPlayer.Symbol
	moveNumber := len(game.Moves)
	roomID := room.ID

	go func() {
		result := rt.engine.BestMove(b, symbol, moveNumber)
		reply := make(chan response, 1)
		rt.requests <- request{kind: opAIResult, roomID: roomID, aiResult: result, reply: reply}
		<-reply
	}()
}

func (rt *Runtime) handleAIResult(req request) {
	room, ok := rt.reg.Room(req.roomID)
	if !ok || room.Game.Status != match.StatusPlaying {
		req.reply <- response{}
		return
	}
	aiPlayer, ok := match.AIPlayer(room.Game)
	if !ok {
		req.reply <- response{}
		return
	}

	pos := req.aiResult.Position
	rt.applyMove(room, aiPlayer.Symbol, pos.Row, pos.Col, EventAIMove)
	req.reply <- response{room: room}
}

// GetState returns the current room, per spec.md §4.C get-state.
func (rt *Runtime) GetState(roomID string) (*match.Room, *apierr.Error) {
	reply := make(chan response, 1)
	rt.requests <- request{kind: opGetState, roomID: roomID, reply: reply}
	res := <-reply
	return res.room, res.err
}

func (rt *Runtime) handleGetState(req request) {
	room, ok := rt.reg.Room(req.roomID)
	if !ok {
		req.reply <- response{err: apierr.NotFound("room not found")}
		return
	}
	req.reply <- response{room: room}
}

// Reset replaces a room's game with a fresh one, preserving players and
// win stats, per spec.md §4.C reset-game-in-room.
func (rt *Runtime) Reset(roomID string) (*match.Room, *apierr.Error) {
	reply := make(chan response, 1)
	rt.requests <- request{kind: opReset, roomID: roomID, reply: reply}
	res := <-reply
	return res.room, res.err
}

func (rt *Runtime) handleReset(req request) {
	room, ok := rt.reg.Room(req.roomID)
	if !ok {
		req.reply <- response{err: apierr.NotFound("room not found")}
		return
	}
	match.ResetGameInRoom(room)
	rt.broadcaster.BroadcastToRoom(room.ID, Event{Type: EventReset, RoomID: room.ID})
	req.reply <- response{room: room}

	rt.maybeTriggerAI(room)
}

// EndGame marks a player disconnected (e.g. the human leaving or closing
// their socket) rather than removing them outright, per spec.md §4.E: the
// seat stays reserved so a reconnect within the reap window recovers the
// same game. The periodic reaper is the only thing that ever actually
// removes a player or a room (see Runtime.reap / match.ShouldCleanup).
func (rt *Runtime) EndGame(roomID, playerID string) *apierr.Error {
	reply := make(chan response, 1)
	rt.requests <- request{kind: opEndGame, roomID: roomID, playerID: playerID, reply: reply}
	res := <-reply
	return res.err
}

func (rt *Runtime) handleEndGame(req request) {
	room, ok := rt.reg.Room(req.roomID)
	if !ok {
		req.reply <- response{err: apierr.NotFound("room not found")}
		return
	}
	player, ok := match.FindPlayer(room.Game, req.playerID)
	if !ok {
		req.reply <- response{err: apierr.NotFound("player is not seated in this room")}
		return
	}
	player.Connected = false
	player.LastActivity = time.Now()
	req.reply <- response{room: room}
}

func validationError(f board.Failure) *apierr.Error {
	switch f {
	case board.NotActive:
		return apierr.Unprocessable("game is not active")
	case board.NotYourTurn:
		return apierr.Unprocessable("not your turn")
	case board.OutOfBounds:
		return apierr.BadRequest("move is out of bounds")
	case board.Occupied:
		return apierr.Unprocessable("cell is already occupied")
	default:
		return apierr.Internal("unknown validation failure")
	}
}
