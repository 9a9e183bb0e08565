package eval

import (
	"math/rand"
	"testing"

	"github.com/greymatterlabs/uttt-arena/internal/board"
)

func TestTerminalSaturatesForWinner(t *testing.T) {
	moves := []int{0, 3, 27, 4, 36, 5, 46, 13, 37, 12, 28, 14, 47, 22, 38, 21, 29, 23}
	b := board.New(2)
	for _, m := range moves {
		if !b.MakeMove(m) {
			t.Fatalf("move %d rejected", m)
		}
	}
	if score, done := Terminal(b, board.O); !done || score != WinScore {
		t.Fatalf("Terminal(O) = (%d, %v), want (%d, true)", score, done, WinScore)
	}
	if score, done := Terminal(b, board.X); !done || score != -WinScore {
		t.Fatalf("Terminal(X) = (%d, %v), want (%d, true)", score, done, -WinScore)
	}
}

func TestMaterialZeroOnFreshBoard(t *testing.T) {
	b := board.New(2)
	if got := Material(b, board.X); got != 0 {
		t.Fatalf("Material on fresh board = %d, want 0", got)
	}
}

func TestMaterialFavorsCapturedSquares(t *testing.T) {
	moves := []int{0, 3, 27, 4, 36, 5, 46, 13}
	b := board.New(2)
	for _, m := range moves {
		b.MakeMove(m)
	}
	scoreX := Material(b, board.X)
	scoreO := Material(b, board.O)
	if scoreX != -scoreO {
		t.Fatalf("Material should be zero-sum: X=%d O=%d", scoreX, scoreO)
	}
	// O's 3, 4, 5 captured sub-board 0; X has captured nothing.
	if scoreO <= 0 {
		t.Fatalf("Material(O) = %d, want positive after O captured sub-board 0", scoreO)
	}
}

func TestRolloutDeterministicUnderSeed(t *testing.T) {
	b := board.New(2)
	b.MakeMove(0)
	depthBefore := b.MoveCount()

	r1 := Rollout(20, rand.New(rand.NewSource(7)))
	r2 := Rollout(20, rand.New(rand.NewSource(7)))

	score1 := r1(b, board.X)
	if b.MoveCount() != depthBefore {
		t.Fatalf("Rollout did not restore board: moveCount=%d want %d", b.MoveCount(), depthBefore)
	}
	score2 := r2(b, board.X)
	if score1 != score2 {
		t.Fatalf("Rollout not deterministic under identical seed: %d != %d", score1, score2)
	}
}

func TestCombineLinearBlend(t *testing.T) {
	b := board.New(2)
	b.MakeMove(0)
	combined := Combine(
		WeightedEvaluator{Eval: Material, Weight: 2},
		WeightedEvaluator{Eval: Diagonal, Weight: 1},
	)
	got := combined(b, board.X)
	want := 2*Material(b, board.X) + Diagonal(b, board.X)
	if got != want {
		t.Fatalf("Combine = %d, want %d", got, want)
	}
}
