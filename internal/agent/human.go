package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/greymatterlabs/uttt-arena/internal/board"
)

// Human reads moves from an io.Reader and writes prompts/board state to an
// io.Writer, instead of wiring directly to stdin/stdout — this keeps it
// scriptable for replay and tests. Not part of the tournament pool's bot
// roster; used only by the interactive CLI.
type Human struct {
	board     *board.Board
	in        *bufio.Scanner
	out       io.Writer
	remaining time.Duration
}

// NewHuman builds a Human agent reading one move per line from in.
func NewHuman(remaining time.Duration, in io.Reader, out io.Writer) *Human {
	return &Human{in: bufio.NewScanner(in), out: out, remaining: remaining}
}

func (a *Human) Ready(ctx context.Context, budget time.Duration) bool {
	a.board = board.New(2)
	return true
}

func (a *Human) GetMove(ctx context.Context, lastOpponentMove int, remX, remO time.Duration) int {
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

	fmt.Fprintln(a.out, a.board.String())
	fmt.Fprintf(a.out, "legal moves: %v\nyour move: ", a.board.GetMoves())

	if !a.in.Scan() {
		return SentinelProtocolViolation
	}
	move, err := strconv.Atoi(strings.TrimSpace(a.in.Text()))
	if err != nil {
		return SentinelProtocolViolation
	}
	if !a.board.MakeMove(move) {
		return SentinelProtocolViolation
	}
	return move
}

func (a *Human) GetRemTime() time.Duration { return a.remaining }

func (a *Human) Cleanup() {}
