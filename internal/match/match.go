// Package match plays a single game between two agent.Agent implementations
// and classifies the outcome, per the five-step runner contract.
package match

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/greymatterlabs/uttt-arena/internal/agent"
	"github.com/greymatterlabs/uttt-arena/internal/board"
)

// ErrReadinessFailure is returned by Run when one or both agents failed
// Ready (the spec's ChildSpawnFailure error kind). The returned Player still
// names the forfeit winner (or Dead if both failed), but a caller that rates
// match outcomes (the tournament pool) must check for this error first: a
// spawn/handshake failure is not a played game and is excluded from rating
// updates by default.
var ErrReadinessFailure = errors.New("match: one or both agents failed readiness")

// Factory constructs one side's agent for a single game.
type Factory func() agent.Agent

// Listener receives optional progress callbacks while a match runs. A nil
// Listener is valid; Run checks for nil before every call.
type Listener interface {
	// OnMoveMade fires after each accepted move, naming the side that moved.
	OnMoveMade(mover board.Player, move int)
	// OnGameEnd fires once with the final outcome, before the agents are
	// cleaned up. It is not called when Run returns a ctx cancellation error.
	OnGameEnd(winner board.Player)
}

// Run plays one game between an X agent and an O agent built by the given
// factories, returning the winner (X, O, or Dead for a draw/double-forfeit).
// listener may be nil. A non-nil error is either ErrReadinessFailure (one or
// both agents failed Ready) or a wrapped ctx cancellation; every in-game
// failure mode (timeout, protocol violation) is a normal, unerrored result,
// folded into the returned Player per the forfeit rules below.
func Run(ctx context.Context, xFactory, oFactory Factory, warmup time.Duration, listener Listener) (board.Player, error) {
	x := xFactory()
	o := oFactory()

	xReady, oReady := readyBoth(ctx, x, o, warmup)
	defer x.Cleanup()
	defer o.Cleanup()

	if !xReady && !oReady {
		notifyEnd(listener, board.Dead)
		return board.Dead, ErrReadinessFailure
	}
	if !xReady {
		notifyEnd(listener, board.O)
		return board.O, ErrReadinessFailure
	}
	if !oReady {
		notifyEnd(listener, board.X)
		return board.X, ErrReadinessFailure
	}

	b := board.New(2)
	toMove := board.X
	lastMove := agent.NoMove

	for {
		if err := ctx.Err(); err != nil {
			return board.Dead, fmt.Errorf("match: %w", err)
		}

		mover := x
		if toMove == board.O {
			mover = o
		}

		move := mover.GetMove(ctx, lastMove, x.GetRemTime(), o.GetRemTime())
		if move < 0 || !b.MakeMove(move) {
			loser := toMove
			winner := loser.Opponent()
			notifyEnd(listener, winner)
			return winner, nil
		}
		notifyMove(listener, toMove, move)

		if w := b.Winner(); w != board.Empty {
			notifyEnd(listener, w)
			return w, nil
		}

		lastMove = move
		toMove = toMove.Opponent()
	}
}

// readyBoth calls Ready on both agents in parallel so neither agent's warm-up
// cost is charged against the other's budget.
func readyBoth(ctx context.Context, x, o agent.Agent, warmup time.Duration) (xReady, oReady bool) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		xReady = x.Ready(ctx, warmup)
	}()
	go func() {
		defer wg.Done()
		oReady = o.Ready(ctx, warmup)
	}()
	wg.Wait()
	return xReady, oReady
}

func notifyMove(l Listener, mover board.Player, move int) {
	if l != nil {
		l.OnMoveMade(mover, move)
	}
}

func notifyEnd(l Listener, winner board.Player) {
	if l != nil {
		l.OnGameEnd(winner)
	}
}
