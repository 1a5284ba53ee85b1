// Package ai implements the adversarial search that produces AI replies:
// an opening book, immediate win/block detection, a pattern evaluator, and
// a bounded alpha-beta search backed by a transposition cache. The overall
// shape — iterative deepening against a wall-clock deadline, a
// transposition table keyed by a board fingerprint, move ordering by a
// cheap heuristic before the expensive search — follows
// backend/cmd/bot-hoster/ai_engine.go's CalculateMove, adapted from the
// virus-game's territory rules to Gomoku's five-in-a-row rules.
package ai

import (
	"math/rand"
	"sort"
	"time"

	"github.com/korjavin/gomoku-arena/internal/board"
)

// DefaultDeadline is the AI search's default wall-clock budget per move,
// per spec.md §4.B / §5.
const DefaultDeadline = time.Second

// CandidateLimit bounds how many candidate moves the bounded search
// considers at the root (spec.md §4.B: "top-K candidate moves, K small,
// e.g. 12").
const CandidateLimit = 12

// Result is the outcome of one best-move search.
type Result struct {
	Position   board.Position
	Score      float64
	Nodes      int
	Depth      int
	Elapsed    time.Duration
	Confidence float64
}

// Engine runs AI searches for one process. It owns the transposition
// cache, which is shared across searches and bounded by the reaper.
type Engine struct {
	Cache    *TranspositionTable
	Deadline time.Duration
	rng      *rand.Rand
}

// NewEngine constructs an Engine with a fresh transposition cache and the
// default search deadline.
func NewEngine() *Engine {
	return &Engine{
		Cache:    NewTranspositionTable(DefaultCacheCeiling),
		Deadline: DefaultDeadline,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BestMove produces a reply for the AI player holding aiSymbol, on the
// board after moveNumber moves have been played. It never returns an
// occupied cell while the board has an empty one. The immediate-win/block
// scan and the opening-book scorer break ties by (lower row, then lower
// column); the search keeps, among equally scored moves, the one ranked
// first by the candidate ordering (more nearby stones, then lower row, then
// lower column), so its ties are not decided by row and column alone. The
// opening book's second move is chosen at random.
func (e *Engine) BestMove(b board.Board, aiSymbol board.Symbol, moveNumber int) Result {
	start := time.Now()

	if pos, ok := e.openingBook(b, aiSymbol, moveNumber); ok {
		return Result{Position: pos, Score: 0, Nodes: 0, Depth: 0, Elapsed: time.Since(start), Confidence: 0.5}
	}

	opponent := aiSymbol.Opponent()

	if pos, ok := findWinningMove(b, aiSymbol); ok {
		return Result{Position: pos, Score: winScore, Nodes: 1, Depth: 1, Elapsed: time.Since(start), Confidence: 1}
	}
	if pos, ok := findWinningMove(b, opponent); ok {
		return Result{Position: pos, Score: -winScore, Nodes: 1, Depth: 1, Elapsed: time.Since(start), Confidence: 1}
	}

	deadline := e.Deadline
	if deadline <= 0 {
		deadline = DefaultDeadline
	}
	deadlineAt := start.Add(deadline)

	candidates := candidateMoves(b, CandidateLimit)
	if len(candidates) == 0 {
		// candidateMoves is empty only on a full board, where no legal move
		// exists; the center is returned as a placeholder.
		return Result{Position: board.Position{Row: board.Size / 2, Col: board.Size / 2}, Confidence: 0.5}
	}

	s := &search{
		engine:     e,
		aiSymbol:   aiSymbol,
		deadlineAt: deadlineAt,
	}

	best := candidates[0]
	bestScore := evaluate(board.Apply(b, best.Row, best.Col, aiSymbol), aiSymbol)
	depthReached := 0
	nodes := 0

	for depth := 1; depth <= 6; depth++ {
		if time.Now().After(deadlineAt) {
			break
		}
		move, score, ok := s.rootSearch(b, candidates, depth)
		nodes = s.nodes
		if !ok {
			break
		}
		best = move
		bestScore = score
		depthReached = depth
	}

	confidence := 0.5
	if depthReached > 0 {
		confidence = 0.5 + 0.08*float64(depthReached)
		if confidence > 0.97 {
			confidence = 0.97
		}
	}

	return Result{
		Position:   best,
		Score:      bestScore,
		Nodes:      nodes,
		Depth:      depthReached,
		Elapsed:    time.Since(start),
		Confidence: confidence,
	}
}

// findWinningMove reports the first empty cell (in row-major, then
// column-major order) that gives symbol an immediate five-in-a-row,
// implementing spec.md §4.B step 2 (immediate-win / immediate-block).
func findWinningMove(b board.Board, symbol board.Symbol) (board.Position, bool) {
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if b.At(r, c) != board.Empty {
				continue
			}
			candidate := board.Apply(b, r, c, symbol)
			if _, won := board.CheckWin(candidate, r, c, symbol); won {
				return board.Position{Row: r, Col: c}, true
			}
		}
	}
	return board.Position{}, false
}

// candidateMoves returns up to limit empty cells within distance 2 of any
// stone, ordered by a cheap positional heuristic — the move-ordering
// heuristic spec.md §4.B calls for ahead of the expensive search.
func candidateMoves(b board.Board, limit int) []board.Position {
	type scored struct {
		pos   board.Position
		score float64
	}
	seen := make(map[board.Position]bool)
	var out []scored

	hasStones := false
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if b.At(r, c) != board.Empty {
				hasStones = true
				break
			}
		}
	}
	if !hasStones {
		return []board.Position{{Row: board.Size / 2, Col: board.Size / 2}}
	}

	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if b.At(r, c) == board.Empty {
				continue
			}
			for dr := -2; dr <= 2; dr++ {
				for dc := -2; dc <= 2; dc++ {
					nr, nc := r+dr, c+dc
					if !board.InBounds(nr, nc) || b.At(nr, nc) != board.Empty {
						continue
					}
					p := board.Position{Row: nr, Col: nc}
					if seen[p] {
						continue
					}
					seen[p] = true
					out = append(out, scored{pos: p, score: quickScore(b, p)})
				}
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		if out[i].pos.Row != out[j].pos.Row {
			return out[i].pos.Row < out[j].pos.Row
		}
		return out[i].pos.Col < out[j].pos.Col
	})

	if len(out) > limit {
		out = out[:limit]
	}
	positions := make([]board.Position, len(out))
	for i, s := range out {
		positions[i] = s.pos
	}
	return positions
}

// quickScore counts stones in the 5x5 neighborhood of p, used only to order
// candidates before the real pattern evaluator runs.
func quickScore(b board.Board, p board.Position) float64 {
	count := 0.0
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			if b.At(p.Row+dr, p.Col+dc) != board.Empty {
				count++
			}
		}
	}
	return count
}
