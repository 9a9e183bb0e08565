package agent

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/greymatterlabs/uttt-arena/internal/board"
	"github.com/greymatterlabs/uttt-arena/internal/eval"
	"github.com/greymatterlabs/uttt-arena/internal/search"
)

func alwaysFirstLegal(b *board.Board) (int, error) {
	moves := b.GetMoves()
	if len(moves) == 0 {
		return 0, search.ErrNoLegalMoves
	}
	return moves[0], nil
}

func TestLocalPlaysLegalMoves(t *testing.T) {
	x := NewLocal(time.Minute, alwaysFirstLegal)
	o := NewLocal(time.Minute, alwaysFirstLegal)
	ctx := context.Background()

	if !x.Ready(ctx, time.Second) || !o.Ready(ctx, time.Second) {
		t.Fatal("Ready returned false")
	}

	last := NoMove
	for i := 0; i < 5; i++ {
		move := x.GetMove(ctx, last, x.GetRemTime(), o.GetRemTime())
		if move < 0 {
			t.Fatalf("X GetMove returned sentinel %d", move)
		}
		last = o.GetMove(ctx, move, x.GetRemTime(), o.GetRemTime())
		if last < 0 {
			t.Fatalf("O GetMove returned sentinel %d", last)
		}
	}
}

func TestLocalGetMoveRejectsIllegalOpponentMove(t *testing.T) {
	x := NewLocal(time.Minute, alwaysFirstLegal)
	ctx := context.Background()
	x.Ready(ctx, time.Second)

	// Play a legal first move to exhaust "anywhere" as next_legal, then
	// claim the opponent played an illegal cell already occupied.
	move := x.GetMove(ctx, NoMove, time.Minute, time.Minute)
	if move < 0 {
		t.Fatalf("first GetMove returned sentinel %d", move)
	}
	if got := x.GetMove(ctx, move, time.Minute, time.Minute); got != SentinelProtocolViolation {
		t.Fatalf("GetMove with an occupied opponent move = %d, want SentinelProtocolViolation", got)
	}
}

func TestLocalTimesOutWhenBudgetExhausted(t *testing.T) {
	x := NewLocal(0, alwaysFirstLegal)
	ctx := context.Background()
	x.Ready(ctx, time.Second)
	if got := x.GetMove(ctx, NoMove, 0, 0); got != SentinelTimeout {
		t.Fatalf("GetMove with zero budget = %d, want SentinelTimeout", got)
	}
}

func TestLocalWithNegamaxChooser(t *testing.T) {
	chooser := func(b *board.Board) (int, error) {
		return search.ChooseMove(b, eval.Material, search.Options{Depth: 1})
	}
	x := NewLocal(time.Minute, chooser)
	ctx := context.Background()
	x.Ready(ctx, time.Second)
	move := x.GetMove(ctx, NoMove, time.Minute, time.Minute)
	if move < 0 {
		t.Fatalf("GetMove with negamax chooser returned sentinel %d", move)
	}
}

func TestHumanReadsScriptedMoves(t *testing.T) {
	in := strings.NewReader("0\n10\n")
	var out bytes.Buffer
	h := NewHuman(time.Minute, in, &out)
	ctx := context.Background()
	h.Ready(ctx, time.Second)

	move := h.GetMove(ctx, NoMove, time.Minute, time.Minute)
	if move != 0 {
		t.Fatalf("first move = %d, want 0", move)
	}
	// The opponent answers in sub-board 0 at cell 1, which sends the human
	// to sub-board 1 (cells 9..17), where 10 is legal.
	move = h.GetMove(ctx, 1, time.Minute, time.Minute)
	if move != 10 {
		t.Fatalf("second move = %d, want 10", move)
	}
	if out.Len() == 0 {
		t.Fatal("Human agent did not write any board/prompt output")
	}
}

func TestHumanRejectsMalformedInput(t *testing.T) {
	in := strings.NewReader("not-a-number\n")
	var out bytes.Buffer
	h := NewHuman(time.Minute, in, &out)
	ctx := context.Background()
	h.Ready(ctx, time.Second)
	if got := h.GetMove(ctx, NoMove, time.Minute, time.Minute); got != SentinelProtocolViolation {
		t.Fatalf("GetMove with malformed input = %d, want SentinelProtocolViolation", got)
	}
}

// stubDriver satisfies pipeDriver without spawning a real process.
type stubDriver struct {
	ready     bool
	moveReply int
}

func (s *stubDriver) Ready(ctx context.Context, budget time.Duration) bool { return s.ready }
func (s *stubDriver) GetMove(ctx context.Context, lastOpponentMove int, remX, remO time.Duration) int {
	return s.moveReply
}
func (s *stubDriver) GetRemTime() time.Duration { return time.Minute }
func (s *stubDriver) Cleanup()                  {}

func TestPipeDelegatesToDriver(t *testing.T) {
	d := &stubDriver{ready: true, moveReply: 17}
	p := NewPipe(d)
	ctx := context.Background()
	if !p.Ready(ctx, time.Second) {
		t.Fatal("Pipe.Ready = false, want true")
	}
	if got := p.GetMove(ctx, NoMove, time.Minute, time.Minute); got != 17 {
		t.Fatalf("Pipe.GetMove = %d, want 17", got)
	}
	p.Cleanup()
}
