// Package eval provides positional evaluators for Ultimate Tic-Tac-Toe
// boards: functions from (board, side) to an integer score, "good for side"
// under a positive-is-winning convention.
package eval

import (
	"math/rand"

	"github.com/greymatterlabs/uttt-arena/internal/board"
)

// WinScore saturates any terminal evaluation, well below int32 bounds so
// negating it in negamax never overflows.
const WinScore int32 = 50000

// Evaluator scores b from side's perspective: positive favors side, negative
// favors the opponent. Passed by reference through search recursion rather
// than captured in a per-node closure.
type Evaluator func(b *board.Board, side board.Player) int32

// Terminal reports whether b is over and, if so, the saturating score from
// side's perspective. The second return is false for an ongoing game, in
// which case the caller should fall through to a positional evaluator.
func Terminal(b *board.Board, side board.Player) (int32, bool) {
	switch b.Winner() {
	case board.Empty:
		return 0, false
	case board.Dead:
		return 0, true
	case side:
		return WinScore, true
	default:
		return -WinScore, true
	}
}

const (
	wSquare     int32 = 10
	wCenterSub  int32 = 6
	wCenterCell int32 = 2
)

// centerSub is the sub-board index (row-major) at the center of the level-2
// board; centerCellOf(sub) is the center cell of sub-board sub.
const centerSub = 4

func centerCellOf(sub int) int { return sub*9 + 4 }

// Material scores captured sub-boards, a center-sub-board bonus, and
// center-cell ownership within each sub-board.
func Material(b *board.Board, side board.Player) int32 {
	if score, done := Terminal(b, side); done {
		return score
	}
	opp := side.Opponent()
	var score int32
	for sub := 0; sub < 9; sub++ {
		owner := b.Get(board.Square{TopLeft: sub * 9, Level: 1})
		switch owner {
		case side:
			score += wSquare
			if sub == centerSub {
				score += wCenterSub
			}
		case opp:
			score -= wSquare
			if sub == centerSub {
				score -= wCenterSub
			}
		}
		switch b.Get(board.Square{TopLeft: centerCellOf(sub), Level: 0}) {
		case side:
			score += wCenterCell
		case opp:
			score -= wCenterCell
		}
	}
	return score
}

// diagonalSubs are the sub-board indices on the level-2 main diagonal.
var diagonalSubs = [3]int{0, 4, 8}

const wDiagonalSub int32 = 8

// Diagonal scores ownership of the main-diagonal sub-boards plus the center
// sub-board, on top of the Material baseline.
func Diagonal(b *board.Board, side board.Player) int32 {
	if score, done := Terminal(b, side); done {
		return score
	}
	opp := side.Opponent()
	score := Material(b, side)
	for _, sub := range diagonalSubs {
		switch b.Get(board.Square{TopLeft: sub * 9, Level: 1}) {
		case side:
			score += wDiagonalSub
		case opp:
			score -= wDiagonalSub
		}
	}
	return score
}

// Rollout plays n uniform-random games to completion from b's current
// position (which it restores via undo before returning) and scores
// (wins - losses) from side's perspective. Deterministic given rng, so it is
// safe to use in tests.
func Rollout(n int, rng *rand.Rand) Evaluator {
	return func(b *board.Board, side board.Player) int32 {
		if score, done := Terminal(b, side); done {
			return score
		}
		var score int32
		for i := 0; i < n; i++ {
			played := playRandomGame(b, rng)
			switch b.Winner() {
			case side:
				score++
			case board.Dead:
			default:
				score--
			}
			for j := 0; j < played; j++ {
				b.UndoMove()
			}
		}
		return score
	}
}

func playRandomGame(b *board.Board, rng *rand.Rand) int {
	played := 0
	for b.Winner() == board.Empty {
		moves := b.GetMoves()
		if len(moves) == 0 {
			break
		}
		m := moves[rng.Intn(len(moves))]
		if !b.MakeMove(m) {
			break
		}
		played++
	}
	return played
}

// Combine linearly blends several evaluators by integer weight. Not part of
// the reference evaluator set; a small convenience so callers can blend
// Material and Diagonal without hand-writing a new closure each time.
func Combine(weighted ...WeightedEvaluator) Evaluator {
	return func(b *board.Board, side board.Player) int32 {
		if score, done := Terminal(b, side); done {
			return score
		}
		var total int32
		for _, w := range weighted {
			total += w.Weight * w.Eval(b, side)
		}
		return total
	}
}

// WeightedEvaluator pairs an Evaluator with an integer weight for Combine.
type WeightedEvaluator struct {
	Eval   Evaluator
	Weight int32
}
