package ai

import "github.com/korjavin/gomoku-arena/internal/board"

// winScore is the evaluation assigned to a completed five-in-a-row. It is
// kept well above any achievable pattern-weight sum so a forced win always
// outranks a merely strong position.
const winScore = 1_000_000.0

// patternWeights scores a run of consecutive same-symbol stones by its
// length and how many ends are open (spec.md §4.B: "open four", "double
// three" should dominate the evaluation). Index is run length (2..4);
// [0] is both ends open, [1] is one end open.
var patternWeights = map[int][2]float64{
	2: {10, 4},
	3: {120, 25},
	4: {4000, 300},
}

// evaluate scores b from aiSymbol's perspective: positive favors aiSymbol,
// negative favors the opponent. It sums, over every axis and every run of
// 2-4 same-symbol stones, a weight keyed by run length and open-end count,
// following ai_engine.go's pattern-scoring approach generalized from
// territory-counting to line-counting.
func evaluate(b board.Board, aiSymbol board.Symbol) float64 {
	return scoreFor(b, aiSymbol) - scoreFor(b, aiSymbol.Opponent())
}

func scoreFor(b board.Board, symbol board.Symbol) float64 {
	total := 0.0
	directions := [4]board.Position{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: -1}}

	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if b.At(r, c) != symbol {
				continue
			}
			for _, d := range directions {
				// Only score a run starting at its first stone along this
				// direction, so each run is counted exactly once.
				pr, pc := r-d.Row, c-d.Col
				if board.InBounds(pr, pc) && b.At(pr, pc) == symbol {
					continue
				}
				total += runScore(b, r, c, d, symbol)
			}
		}
	}
	return total
}

// runScore measures the run of symbol starting at (r,c) going in direction
// d, and weighs it by length and open-end count. Runs of 5+ are the
// immediate-win case handled separately and are not double-counted here.
func runScore(b board.Board, r, c int, d board.Position, symbol board.Symbol) float64 {
	length := 0
	er, ec := r, c
	for board.InBounds(er, ec) && b.At(er, ec) == symbol {
		length++
		er += d.Row
		ec += d.Col
	}
	if length < 2 || length > 4 {
		return 0
	}

	openEnds := 0
	if board.InBounds(er, ec) && b.At(er, ec) == board.Empty {
		openEnds++
	}
	br, bc := r-d.Row, c-d.Col
	if board.InBounds(br, bc) && b.At(br, bc) == board.Empty {
		openEnds++
	}
	if openEnds == 0 {
		return 0
	}

	weights := patternWeights[length]
	if openEnds >= 2 {
		return weights[0]
	}
	return weights[1]
}
