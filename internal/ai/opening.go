package ai

import "github.com/korjavin/gomoku-arena/internal/board"

// openingBookMoves is how many plies the opening book governs before
// control passes to immediate-win/block detection and the bounded search,
// per spec.md §4.B ("moves 1 through 8").
const openingBookMoves = 8

// diagonalNeighbors are the four cells diagonally adjacent to a point,
// per spec.md §4.B move 2: "a diagonal neighbor of center".
var diagonalNeighbors = []board.Position{
	{Row: -1, Col: -1}, {Row: -1, Col: 1},
	{Row: 1, Col: -1}, {Row: 1, Col: 1},
}

// openingBook implements spec.md §4.B's scripted-with-variety early game:
//
//   - move 1: take the center, the only provably-neutral opening move on
//     an empty board.
//   - move 2: reply with a diagonal neighbor of center, randomized among
//     the sound (empty) ones to avoid a predictable always-the-same-cell
//     opponent; otherwise (center itself still empty) take the center.
//   - move 3: the diagonal-opposite of whichever diagonal neighbor of
//     center was played, reflecting the existing diagonal through center.
//   - moves 4-8: the (10 - Manhattan-distance-to-center) + 2*neighbor-count
//     scorer, restricted to interior cells (edges and corners rejected)
//     adjacent to at least one existing stone.
//
// From move 9 onward it defers to the general search, which by then has
// enough stones on the board to evaluate meaningfully.
func (e *Engine) openingBook(b board.Board, aiSymbol board.Symbol, moveNumber int) (board.Position, bool) {
	if moveNumber >= openingBookMoves {
		return board.Position{}, false
	}

	center := board.Position{Row: board.Size / 2, Col: board.Size / 2}

	switch moveNumber {
	case 0:
		if b.At(center.Row, center.Col) == board.Empty {
			return center, true
		}
		return board.Position{}, false

	case 1:
		if b.At(center.Row, center.Col) == board.Empty {
			return center, true
		}
		var sound []board.Position
		for _, d := range diagonalNeighbors {
			p := board.Position{Row: center.Row + d.Row, Col: center.Col + d.Col}
			if board.InBounds(p.Row, p.Col) && b.At(p.Row, p.Col) == board.Empty {
				sound = append(sound, p)
			}
		}
		if len(sound) == 0 {
			return board.Position{}, false
		}
		return sound[e.rng.Intn(len(sound))], true

	case 2:
		return diagonalOpposite(b, center)

	default: // moves 4 through 8 (moveNumber 3..7)
		return scoredOpeningMove(b, center)
	}
}

// diagonalOpposite finds the diagonal neighbor of center already occupied
// by either player and, if its reflection through center is empty, plays
// there — per spec.md §4.B move 3.
func diagonalOpposite(b board.Board, center board.Position) (board.Position, bool) {
	for _, d := range diagonalNeighbors {
		p := board.Position{Row: center.Row + d.Row, Col: center.Col + d.Col}
		if b.At(p.Row, p.Col) == board.Empty {
			continue
		}
		opposite := board.Position{Row: center.Row - d.Row, Col: center.Col - d.Col}
		if board.InBounds(opposite.Row, opposite.Col) && b.At(opposite.Row, opposite.Col) == board.Empty {
			return opposite, true
		}
	}
	return board.Position{}, false
}

// scoredOpeningMove implements spec.md §4.B moves 4-8: score every empty,
// non-edge, non-corner cell adjacent to at least one stone by
// (10 - Manhattan distance to center) + 2*(occupied 8-neighbors), and take
// the highest-scoring cell, tie-broken by lower row then lower column.
func scoredOpeningMove(b board.Board, center board.Position) (board.Position, bool) {
	best := board.Position{}
	bestScore := 0
	found := false

	for r := 1; r < board.Size-1; r++ {
		for c := 1; c < board.Size-1; c++ {
			if b.At(r, c) != board.Empty {
				continue
			}
			neighbors := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					if b.At(r+dr, c+dc) != board.Empty {
						neighbors++
					}
				}
			}
			if neighbors == 0 {
				continue
			}

			score := (10 - manhattan(r, c, center.Row, center.Col)) + 2*neighbors
			if !found || score > bestScore {
				best = board.Position{Row: r, Col: c}
				bestScore = score
				found = true
			}
			// Equal score: keep the earlier (lower row, then lower col)
			// candidate, since the scan already visits cells in that order.
		}
	}
	return best, found
}

func manhattan(r1, c1, r2, c2 int) int {
	return absInt(r1-r2) + absInt(c1-c2)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
