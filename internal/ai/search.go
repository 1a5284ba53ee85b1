package ai

import (
	"math"
	"time"

	"github.com/korjavin/gomoku-arena/internal/board"
)

// search carries the mutable state of one iterative-deepening pass: the
// node counter, the shared engine (and its transposition cache), and the
// deadline every recursive call checks before descending further. This
// mirrors ai_engine.go's AIEngine.findBestMoveWithMinimax, which threads
// the same three things through its own recursion.
type search struct {
	engine     *Engine
	aiSymbol   board.Symbol
	deadlineAt time.Time
	nodes      int
}

// expired reports whether the deadline has passed. Running out of time is
// reported via the ok return rather than a real error type, since every
// caller already distinguishes "ran out of time" from "found a result"
// with a boolean.
func (s *search) expired() bool {
	return time.Now().After(s.deadlineAt)
}

// rootSearch runs one full-depth alpha-beta pass over candidates and
// returns the best move found, or ok=false if the deadline expired before
// a complete pass could finish.
func (s *search) rootSearch(b board.Board, candidates []board.Position, depth int) (board.Position, float64, bool) {
	best := candidates[0]
	bestScore := math.Inf(-1)
	alpha, beta := math.Inf(-1), math.Inf(1)

	for _, move := range candidates {
		if s.expired() {
			return board.Position{}, 0, false
		}
		next := board.Apply(b, move.Row, move.Col, s.aiSymbol)
		var score float64
		if _, won := board.CheckWin(next, move.Row, move.Col, s.aiSymbol); won {
			score = winScore
		} else {
			score = -s.alphaBeta(next, depth-1, -beta, -alpha, s.aiSymbol.Opponent())
		}
		if score > bestScore {
			bestScore = score
			best = move
		}
		if score > alpha {
			alpha = score
		}
	}

	if s.expired() {
		return board.Position{}, 0, false
	}
	return best, bestScore, true
}

// alphaBeta is a negamax-form bounded search: it always evaluates from
// toMove's perspective and negates the recursive call, per the standard
// negamax transform of minimax. The transposition cache is probed and
// filled keyed by the board fingerprint plus side to move, with the
// remaining depth stored in the entry and checked on lookup, following
// ai_engine.go's TranspositionEntry{Score, Depth, Flag} design.
func (s *search) alphaBeta(b board.Board, depth int, alpha, beta float64, toMove board.Symbol) float64 {
	s.nodes++
	if s.nodes%2048 == 0 && s.expired() {
		return 0
	}

	key := b.Fingerprint(toMove)
	if entry, ok := s.engine.Cache.Get(key); ok && entry.Depth >= depth {
		switch entry.Flag {
		case FlagExact:
			return entry.Score
		case FlagLower:
			if entry.Score > alpha {
				alpha = entry.Score
			}
		case FlagUpper:
			if entry.Score < beta {
				beta = entry.Score
			}
		}
		if alpha >= beta {
			return entry.Score
		}
	}

	if depth == 0 {
		score := evaluate(b, toMove)
		s.engine.Cache.Put(key, TranspositionEntry{Score: score, Depth: depth, Flag: FlagExact})
		return score
	}

	candidates := candidateMoves(b, CandidateLimit)
	if len(candidates) == 0 {
		return 0
	}

	original := alpha
	best := math.Inf(-1)
	for _, move := range candidates {
		next := board.Apply(b, move.Row, move.Col, toMove)
		var score float64
		if _, won := board.CheckWin(next, move.Row, move.Col, toMove); won {
			score = winScore
		} else {
			score = -s.alphaBeta(next, depth-1, -beta, -alpha, toMove.Opponent())
		}
		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}

	flag := FlagExact
	switch {
	case best <= original:
		flag = FlagUpper
	case best >= beta:
		flag = FlagLower
	}
	s.engine.Cache.Put(key, TranspositionEntry{Score: best, Depth: depth, Flag: flag})
	return best
}
