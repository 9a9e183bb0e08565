// Package search implements fixed-depth negamax with alpha-beta pruning over
// a single mutated board.Board, using make/undo instead of cloning at every
// node.
package search

import (
	"context"
	"errors"
	"time"

	"github.com/greymatterlabs/uttt-arena/internal/board"
	"github.com/greymatterlabs/uttt-arena/internal/eval"
)

// ErrNoLegalMoves is returned by ChooseMove on a terminal position; the
// caller (the agent layer) should interpret this as a forfeit signal.
var ErrNoLegalMoves = errors.New("search: no legal moves available")

// MoveOrderer reorders moves before they are iterated at a search node. The
// default orderer is identity: it returns moves unchanged.
type MoveOrderer func(b *board.Board, moves []int) []int

func identityOrder(_ *board.Board, moves []int) []int { return moves }

// Options configures a single Negamax/ChooseMove call.
type Options struct {
	Depth int

	// QuietExtension, when true, extends the search one additional ply at
	// any leaf reached by a capturing move (one that resolved a sub-board),
	// up to MaxExtensionPly additional plies total along any line.
	QuietExtension  bool
	MaxExtensionPly int

	// Orderer reorders GetMoves() output before each node iterates its
	// children. Nil means identity order.
	Orderer MoveOrderer
}

func (o Options) orderer() MoveOrderer {
	if o.Orderer != nil {
		return o.Orderer
	}
	return identityOrder
}

func subOwner(b *board.Board, cell int) board.Player {
	sub := cell / 9
	return b.Get(board.Square{TopLeft: sub * 9, Level: 1})
}

func capturedSubBoard(before board.Player, after board.Player) bool {
	return before == board.Empty && after != board.Empty
}

// Negamax evaluates b from the side-to-move's perspective at depth plies,
// using alpha-beta pruning. b is mutated via make/undo and restored to its
// original state before returning.
func Negamax(b *board.Board, e eval.Evaluator, depth int, alpha, beta int32, opts Options) int32 {
	ext := 0
	if opts.QuietExtension {
		ext = opts.MaxExtensionPly
	}
	return negamax(b, e, depth, ext, alpha, beta, true, opts)
}

// PlainNegamax is the same search without alpha-beta pruning (full-width,
// no cutoffs), used to cross-check that pruning never changes the returned
// score.
func PlainNegamax(b *board.Board, e eval.Evaluator, depth int, opts Options) int32 {
	ext := 0
	if opts.QuietExtension {
		ext = opts.MaxExtensionPly
	}
	return negamax(b, e, depth, ext, -(1 << 30), 1<<30, false, opts)
}

func negamax(b *board.Board, e eval.Evaluator, depth, extLeft int, alpha, beta int32, prune bool, opts Options) int32 {
	if b.Winner() != board.Empty || depth <= 0 {
		return e(b, b.ToMove())
	}

	moves := opts.orderer()(b, b.GetMoves())
	if len(moves) == 0 {
		return e(b, b.ToMove())
	}

	best := int32(-1 << 30)
	for _, m := range moves {
		before := subOwner(b, m)
		b.MakeMove(m)

		nextDepth, nextExt := depth-1, extLeft
		if opts.QuietExtension && nextDepth == 0 && extLeft > 0 && capturedSubBoard(before, subOwner(b, m)) {
			nextDepth = 1
			nextExt = extLeft - 1
		}

		v := -negamax(b, e, nextDepth, nextExt, -beta, -alpha, prune, opts)
		b.UndoMove()

		if v > best {
			best = v
		}
		if best > alpha {
			alpha = best
		}
		if prune && alpha >= beta {
			break
		}
	}
	return best
}

// ChooseMove runs Negamax from the root at each legal move and returns the
// best-scoring one, breaking ties by move order (GetMoves() order as
// rearranged by Options.Orderer; the first move wins ties). Returns
// ErrNoLegalMoves if the position is terminal.
func ChooseMove(b *board.Board, e eval.Evaluator, opts Options) (int, error) {
	if b.Winner() != board.Empty {
		return 0, ErrNoLegalMoves
	}
	moves := opts.orderer()(b, b.GetMoves())
	if len(moves) == 0 {
		return 0, ErrNoLegalMoves
	}

	ext := 0
	if opts.QuietExtension {
		ext = opts.MaxExtensionPly
	}

	bestMove := moves[0]
	bestScore := int32(-1 << 30)
	alpha, beta := int32(-1<<30), int32(1<<30)

	for _, m := range moves {
		before := subOwner(b, m)
		b.MakeMove(m)

		depth, depthExt := opts.Depth-1, ext
		if opts.QuietExtension && depth == 0 && ext > 0 && capturedSubBoard(before, subOwner(b, m)) {
			depth = 1
			depthExt = ext - 1
		}

		v := -negamax(b, e, depth, depthExt, -beta, -alpha, true, opts)
		b.UndoMove()

		if v > bestScore {
			bestScore = v
			bestMove = m
		}
		if bestScore > alpha {
			alpha = bestScore
		}
	}
	return bestMove, nil
}

// IterativeDeepen runs ChooseMove at increasing depths (1..maxDepth),
// returning the last completed depth's move once deadline has passed or
// maxDepth is reached. This turns a depth-bounded search into a
// clock-bounded one for local play without a UTI subprocess.
func IterativeDeepen(ctx context.Context, b *board.Board, e eval.Evaluator, maxDepth int, deadline time.Time, opts Options) (int, error) {
	var (
		move int
		err  error
		got  bool
	)
	for depth := 1; depth <= maxDepth; depth++ {
		if ctx.Err() != nil {
			break
		}
		if got && time.Now().After(deadline) {
			break
		}
		roundOpts := opts
		roundOpts.Depth = depth
		m, e2 := ChooseMove(b, e, roundOpts)
		if e2 != nil {
			if !got {
				err = e2
			}
			break
		}
		move, got = m, true
		err = nil
		if time.Now().After(deadline) {
			break
		}
	}
	if !got {
		return 0, err
	}
	return move, nil
}
