// Package agent defines the common interface every playing agent (local
// search, subprocess engine, human) exposes to the match runner, plus the
// three concrete implementations.
package agent

import (
	"context"
	"time"

	"github.com/greymatterlabs/uttt-arena/internal/board"
)

// Sentinel GetMove return values. NoMove is also used as the
// lastOpponentMove argument to signal "this is the first move of the game".
const (
	NoMove                    = -1
	SentinelTimeout           = -1
	SentinelProtocolViolation = -2
)

// Agent is the common interface the match runner drives. Every
// implementation maintains its own mirror of the game position, since only
// the opponent's latest move (not the whole board) crosses the interface —
// this matches what a subprocess engine can actually observe over the wire.
type Agent interface {
	// Ready prepares the agent within budget and reports whether it is
	// usable; called once per match before any GetMove call.
	Ready(ctx context.Context, budget time.Duration) bool

	// GetMove supplies the opponent's latest move (NoMove for the first
	// move of the game) and both players' remaining clocks, and returns
	// either a legal cell or a negative sentinel.
	GetMove(ctx context.Context, lastOpponentMove int, remX, remO time.Duration) int

	// GetRemTime reports this agent's own remaining clock.
	GetRemTime() time.Duration

	// Cleanup releases any resources. Must be safe to call after a forfeit
	// and safe to call more than once.
	Cleanup()
}

// Chooser picks a move for b's side to move. search.ChooseMove,
// search.IterativeDeepen (bound via closure), and mcts.Agent.ChooseMove
// all satisfy this shape.
type Chooser func(b *board.Board) (int, error)

// Local wraps an in-process Chooser (negamax or MCTS) behind the Agent
// interface, maintaining its own mirrored board and clock.
type Local struct {
	board     *board.Board
	remaining time.Duration
	choose    Chooser
	now       func() time.Time
}

// NewLocal builds a Local agent with the given total clock budget and move
// chooser.
func NewLocal(remaining time.Duration, choose Chooser) *Local {
	return &Local{remaining: remaining, choose: choose, now: time.Now}
}

func (a *Local) Ready(ctx context.Context, budget time.Duration) bool {
	a.board = board.New(2)
	return true
}

func (a *Local) GetMove(ctx context.Context, lastOpponentMove int, remX, remO time.Duration) int {
	if a.board == nil {
		return SentinelProtocolViolation
	}
	if lastOpponentMove != NoMove {
		if !a.board.MakeMove(lastOpponentMove) {
			return SentinelProtocolViolation
		}
	}
	if a.board.Winner() != board.Empty {
		return SentinelProtocolViolation
	}

	start := a.now()
	move, err := a.choose(a.board)
	a.remaining -= a.now().Sub(start)
	if err != nil {
		return SentinelTimeout
	}
	if a.remaining <= 0 {
		return SentinelTimeout
	}
	if !a.board.MakeMove(move) {
		return SentinelProtocolViolation
	}
	return move
}

func (a *Local) GetRemTime() time.Duration { return a.remaining }

func (a *Local) Cleanup() {}
