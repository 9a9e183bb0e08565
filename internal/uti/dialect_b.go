package uti

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/greymatterlabs/uttt-arena/internal/board"
	"github.com/seekerror/logw"
)

// DialectB drives a subprocess engine over the secondary text dialect used
// to interoperate with a specific external platform: row/col pairs instead
// of linear cell indices, and a fixed per-move time limit rather than the
// primary dialect's whole-game clock. The cell<->(row,col) mapping matches
// board.ToCoords/board.FromCoords.
type DialectB struct {
	path string
	args []string

	proc      *childProcess
	firstMove bool
}

// NewDialectB builds a DialectB driver for the engine at path.
func NewDialectB(path string, args []string) *DialectB {
	return &DialectB{path: path, args: args, firstMove: true}
}

// Ready spawns the child. DialectB has no handshake of its own; it simply
// waits out half of budget to give the child time to initialize, matching
// the reference platform's behavior.
func (d *DialectB) Ready(ctx context.Context, budget time.Duration) bool {
	proc, err := spawnChild(d.path, d.args)
	if err != nil {
		logw.Errorf(ctx, "uti/dialect_b: failed to spawn %s: %v", d.path, err)
		return false
	}
	d.proc = proc
	time.Sleep(budget / 2)
	return true
}

// moveTimeout returns the fixed per-move budget: a longer allowance on the
// very first move, then a short one for every subsequent move.
func (d *DialectB) moveTimeout() time.Duration {
	if d.firstMove {
		d.firstMove = false
		return time.Second
	}
	return 100 * time.Millisecond
}

// GetMove sends lastOpponentMove as a "row col" line (or "-1 -1" for the
// first move of the game), then reads the child's own reply and translates
// it back to a linear cell index. A one-token reply is read as the linear
// cell index directly; a two-token reply is read as "row col", per
// board.FromCoords. Three or more tokens is unspecified and treated as a
// protocol violation.
func (d *DialectB) GetMove(ctx context.Context, lastOpponentMove int, remX, remO time.Duration) int {
	row, col := -1, -1
	if lastOpponentMove >= 0 {
		row, col = board.ToCoords(lastOpponentMove)
	}
	if err := d.proc.writeLine(fmt.Sprintf("%d %d", row, col)); err != nil {
		logw.Warningf(ctx, "uti/dialect_b: move update write failed: %v", err)
		return SentinelProtocolViolation
	}

	line, err := d.proc.readLine(ctx, d.moveTimeout())
	if err != nil {
		logw.Warningf(ctx, "uti/dialect_b: read-timeout waiting for move: %v", err)
		return SentinelTimeout
	}

	tokens := strings.Fields(line)
	switch len(tokens) {
	case 1:
		cell, err := strconv.Atoi(tokens[0])
		if err != nil {
			logw.Warningf(ctx, "uti/dialect_b: non-integer cell %q", tokens[0])
			return SentinelProtocolViolation
		}
		return cell
	case 2:
		replyRow, err := strconv.Atoi(tokens[0])
		if err != nil {
			logw.Warningf(ctx, "uti/dialect_b: non-integer row %q", tokens[0])
			return SentinelProtocolViolation
		}
		replyCol, err := strconv.Atoi(tokens[1])
		if err != nil {
			logw.Warningf(ctx, "uti/dialect_b: non-integer col %q", tokens[1])
			return SentinelProtocolViolation
		}
		return board.FromCoords(replyRow, replyCol)
	default:
		logw.Warningf(ctx, "uti/dialect_b: expected 1 or 2 tokens, got %d: %q", len(tokens), line)
		return SentinelProtocolViolation
	}
}

// GetRemTime is not meaningful for this dialect: the reference platform
// enforces per-move limits, not a whole-game clock.
func (d *DialectB) GetRemTime() time.Duration { return 0 }

// Cleanup kills the child process.
func (d *DialectB) Cleanup() {
	if d.proc != nil {
		d.proc.close()
	}
}
