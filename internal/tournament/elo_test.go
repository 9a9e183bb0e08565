package tournament

import (
	"testing"

	"github.com/greymatterlabs/uttt-arena/internal/board"
)

func TestKFactorSchedule(t *testing.T) {
	if got := K(0); got != 40 {
		t.Fatalf("K(0) = %v, want 40", got)
	}
	if got := K(780); got != 1 {
		t.Fatalf("K(780) = %v, want 1", got)
	}
}

func TestExpectedScoreEqualRatingsIsHalf(t *testing.T) {
	if got := ExpectedScore(1500, 1500); got != 0.5 {
		t.Fatalf("ExpectedScore(1500,1500) = %v, want 0.5", got)
	}
}

// TestEloUpdateLiteralScenario matches the worked example: X (R=1500, n=0)
// beats O (R=1500, n=0); K=40, expected score 0.5, delta = floor(40*0.5)=20.
func TestEloUpdateLiteralScenario(t *testing.T) {
	x := Bot{Name: "x", Rating: 1500}
	o := Bot{Name: "o", Rating: 1500}

	xDiff, oDiff := applyResult(&x, &o, board.X)

	if xDiff != 20 {
		t.Fatalf("xDiff = %d, want 20", xDiff)
	}
	if oDiff != -20 {
		t.Fatalf("oDiff = %d, want -20", oDiff)
	}
	if x.Rating != 1520 {
		t.Fatalf("x.Rating = %d, want 1520", x.Rating)
	}
	if o.Rating != 1480 {
		t.Fatalf("o.Rating = %d, want 1480", o.Rating)
	}
	if x.NGames != 1 || o.NGames != 1 {
		t.Fatalf("NGames = (%d,%d), want (1,1)", x.NGames, o.NGames)
	}
}

func TestEloUpdateDrawIsSymmetric(t *testing.T) {
	x := Bot{Name: "x", Rating: 1600}
	o := Bot{Name: "o", Rating: 1400}

	xDiff, oDiff := applyResult(&x, &o, board.Dead)

	// Equal K on both sides must produce exact negation, not just matching signs.
	if xDiff != -oDiff {
		t.Fatalf("xDiff = %d, oDiff = %d, want xDiff == -oDiff", xDiff, oDiff)
	}
	// A higher-rated bot losing expected points on a draw loses rating.
	if xDiff >= 0 {
		t.Fatalf("xDiff = %d, want negative (favorite draws down)", xDiff)
	}
}
