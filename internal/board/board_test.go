package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPreservesPriorCells(t *testing.T) {
	b := New()
	b = Apply(b, 7, 7, Black)
	next := Apply(b, 3, 3, White)

	assert.Equal(t, Black, next.At(7, 7), "prior move must survive a later Apply")
	assert.Equal(t, White, next.At(3, 3))
	assert.Equal(t, Empty, next.At(0, 0))
}

func TestValidateRejectsOccupiedAndOutOfBounds(t *testing.T) {
	b := Apply(New(), 7, 7, Black)

	assert.Equal(t, Occupied, Validate(b, 7, 7, White, White, StatusPlaying))
	assert.Equal(t, OutOfBounds, Validate(b, -1, 0, White, White, StatusPlaying))
	assert.Equal(t, OutOfBounds, Validate(b, 15, 0, White, White, StatusPlaying))
	assert.Equal(t, NotYourTurn, Validate(b, 0, 0, White, Black, StatusPlaying))
	assert.Equal(t, NotActive, Validate(b, 0, 0, Black, Black, StatusWon))
	assert.Equal(t, OK, Validate(b, 0, 0, White, White, StatusPlaying))
}

func TestCheckWinHorizontal(t *testing.T) {
	b := New()
	for _, col := range []int{5, 6, 7, 8, 9} {
		b = Apply(b, 7, col, Black)
	}

	line, won := CheckWin(b, 7, 7, Black)
	require.True(t, won)
	assert.Len(t, line, 5)
	for _, p := range line {
		assert.Equal(t, 7, p.Row)
	}
}

func TestCheckWinDiagonal(t *testing.T) {
	b := New()
	for i := 0; i < 5; i++ {
		b = Apply(b, 3+i, 3+i, White)
	}

	line, won := CheckWin(b, 5, 5, White)
	require.True(t, won)
	assert.Len(t, line, 5)
	// Collinear along the \ diagonal: row - col is constant.
	for _, p := range line {
		assert.Equal(t, 0, p.Row-p.Col)
	}
}

func TestCheckWinRequiresLastMoveInRun(t *testing.T) {
	b := New()
	for _, col := range []int{0, 1, 2, 3, 4} {
		b = Apply(b, 0, col, Black)
	}
	// Checking a different, unrelated cell must not report a win.
	_, won := CheckWin(b, 10, 10, Black)
	assert.False(t, won)
}

func TestCheckWinNoFalsePositiveOnFour(t *testing.T) {
	b := New()
	for _, col := range []int{5, 6, 7, 8} {
		b = Apply(b, 7, col, Black)
	}
	_, won := CheckWin(b, 7, 8, Black)
	assert.False(t, won)
}

func TestIsFull(t *testing.T) {
	b := New()
	assert.False(t, b.IsFull())

	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			sym := Black
			if (r+c)%2 == 0 {
				sym = White
			}
			b = Apply(b, r, c, sym)
		}
	}
	assert.True(t, b.IsFull())
}

func TestFingerprintDistinguishesSideToMove(t *testing.T) {
	b := Apply(New(), 7, 7, Black)
	assert.NotEqual(t, b.Fingerprint(Black), b.Fingerprint(White))
}

func TestFingerprintStableAcrossEqualBoards(t *testing.T) {
	b1 := Apply(Apply(New(), 1, 1, Black), 2, 2, White)
	b2 := Apply(Apply(New(), 2, 2, White), 1, 1, Black)
	assert.Equal(t, b1.Fingerprint(Black), b2.Fingerprint(Black))
}
