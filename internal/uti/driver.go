package uti

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/seekerror/logw"
)

// Sentinel move values returned by GetMove, matching the agent-layer
// contract: negative values other than these are not expected but are
// treated as protocol violations by callers.
const (
	SentinelTimeout           = -1
	SentinelProtocolViolation = -2
)

// Driver drives a subprocess engine over the primary UTI dialect: a
// handshake, "pos moves <cell>" position updates, and "search free <rem_ms_X>
// <rem_ms_O>" requests answered with a single "info key=value;..." line.
type Driver struct {
	path string
	args []string

	proc      *childProcess
	remaining time.Duration
}

// NewDriver builds a Driver for the engine at path, with the given initial
// per-game clock budget.
func NewDriver(path string, args []string, initBudget time.Duration) *Driver {
	return &Driver{path: path, args: args, remaining: initBudget}
}

// Ready spawns the child and performs the handshake within budget. Returns
// false (never an error) on any handshake failure, matching the spec's
// disqualify-on-failed-handshake contract.
func (d *Driver) Ready(ctx context.Context, budget time.Duration) bool {
	proc, err := spawnChild(d.path, d.args)
	if err != nil {
		logw.Errorf(ctx, "uti: failed to spawn %s: %v", d.path, err)
		return false
	}
	d.proc = proc

	if err := d.proc.writeLine("uti"); err != nil {
		logw.Errorf(ctx, "uti: handshake write failed: %v", err)
		return false
	}
	line, err := d.proc.readLine(ctx, budget)
	if err != nil {
		logw.Warningf(ctx, "uti: handshake timed out for %s: %v", d.path, err)
		return false
	}
	if line != "utiok" {
		logw.Warningf(ctx, "uti: child %s replied %q to handshake, want \"utiok\"", d.path, line)
		return false
	}
	return true
}

// GetMove informs the engine of lastOpponentMove (pass a negative value for
// the first move of the game), requests a move under the given clocks, and
// returns the parsed best_move or a sentinel on any failure. Clock
// accounting happens here: wall time from just before "search free" to just
// after the info reply is deducted from the driver's remaining budget.
func (d *Driver) GetMove(ctx context.Context, lastOpponentMove int, remX, remO time.Duration) int {
	if lastOpponentMove >= 0 {
		if err := d.proc.writeLine(fmt.Sprintf("pos moves %d", lastOpponentMove)); err != nil {
			logw.Warningf(ctx, "uti: position update write failed: %v", err)
			return SentinelProtocolViolation
		}
	}

	start := time.Now()
	if err := d.proc.writeLine(fmt.Sprintf("search free %d %d", remX.Milliseconds(), remO.Milliseconds())); err != nil {
		logw.Warningf(ctx, "uti: search request write failed: %v", err)
		return SentinelProtocolViolation
	}

	line, err := d.proc.readLine(ctx, d.remaining)
	elapsed := time.Since(start)
	d.remaining -= elapsed
	if err != nil {
		logw.Warningf(ctx, "uti: read-timeout waiting for info reply: %v", err)
		return SentinelTimeout
	}
	if d.remaining <= 0 {
		logw.Warningf(ctx, "uti: %s exhausted its clock", d.path)
		return SentinelTimeout
	}

	info, err := ParseInfo(line, Strict)
	if err != nil {
		logw.Warningf(ctx, "uti: malformed info line %q: %v", line, err)
		return SentinelProtocolViolation
	}
	raw, ok := info["best_move"]
	if !ok {
		logw.Warningf(ctx, "uti: info line missing best_move: %q", line)
		return SentinelProtocolViolation
	}
	move, err := strconv.Atoi(raw)
	if err != nil {
		logw.Warningf(ctx, "uti: best_move %q is not an integer", raw)
		return SentinelProtocolViolation
	}
	return move
}

// GetRemTime returns the driver's current remaining clock.
func (d *Driver) GetRemTime() time.Duration { return d.remaining }

// Cleanup kills the child process. Safe to call after a forfeit or more
// than once.
func (d *Driver) Cleanup() {
	if d.proc != nil {
		d.proc.close()
	}
}
