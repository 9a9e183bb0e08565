package agent

import (
	"context"
	"time"
)

// pipeDriver is the subset of uti.Driver / uti.DialectB that Pipe needs,
// letting Pipe wrap either dialect without importing uti's concrete types
// into this package's public surface.
type pipeDriver interface {
	Ready(ctx context.Context, budget time.Duration) bool
	GetMove(ctx context.Context, lastOpponentMove int, remX, remO time.Duration) int
	GetRemTime() time.Duration
	Cleanup()
}

// Pipe adapts a uti.Driver or uti.DialectB to the Agent interface; the
// subprocess dialects already satisfy Agent's shape, so this is a thin
// pass-through that exists to give the tournament layer one agent type to
// depend on regardless of dialect.
type Pipe struct {
	driver pipeDriver
}

// NewPipe wraps a uti.Driver or uti.DialectB (or any type satisfying the
// same shape) as an Agent.
func NewPipe(driver pipeDriver) *Pipe {
	return &Pipe{driver: driver}
}

func (p *Pipe) Ready(ctx context.Context, budget time.Duration) bool {
	return p.driver.Ready(ctx, budget)
}

func (p *Pipe) GetMove(ctx context.Context, lastOpponentMove int, remX, remO time.Duration) int {
	return p.driver.GetMove(ctx, lastOpponentMove, remX, remO)
}

func (p *Pipe) GetRemTime() time.Duration { return p.driver.GetRemTime() }

func (p *Pipe) Cleanup() { p.driver.Cleanup() }
