package uti

import (
	"context"
	"testing"
	"time"
)

// echoUTIScript is a minimal shell "engine" that answers the primary UTI
// dialect: it replies utiok to the handshake and a fixed best_move to every
// search request, ignoring position updates.
const echoUTIScript = `
while IFS= read -r line; do
  case "$line" in
    uti) echo utiok ;;
    "search free"*) echo "info best_move=42" ;;
    *) ;;
  esac
done
`

func TestDriverHandshakeAndMove(t *testing.T) {
	d := NewDriver("/bin/sh", []string{"-c", echoUTIScript}, time.Second)
	ctx := context.Background()

	if !d.Ready(ctx, time.Second) {
		t.Fatal("Ready returned false")
	}
	defer d.Cleanup()

	move := d.GetMove(ctx, -1, time.Second, time.Second)
	if move != 42 {
		t.Fatalf("GetMove = %d, want 42", move)
	}
}

func TestDriverHandshakeFailure(t *testing.T) {
	d := NewDriver("/bin/sh", []string{"-c", "while IFS= read -r line; do echo nope; done"}, time.Second)
	ctx := context.Background()
	if d.Ready(ctx, 200*time.Millisecond) {
		t.Fatal("Ready returned true for a non-compliant handshake reply")
	}
	d.Cleanup()
}

const malformedInfoScript = `
while IFS= read -r line; do
  case "$line" in
    uti) echo utiok ;;
    "search free"*) echo "bestmove=5" ;;
    *) ;;
  esac
done
`

func TestDriverProtocolViolationOnMalformedInfo(t *testing.T) {
	d := NewDriver("/bin/sh", []string{"-c", malformedInfoScript}, time.Second)
	ctx := context.Background()
	if !d.Ready(ctx, time.Second) {
		t.Fatal("Ready returned false")
	}
	defer d.Cleanup()

	move := d.GetMove(ctx, -1, time.Second, time.Second)
	if move != SentinelProtocolViolation {
		t.Fatalf("GetMove = %d, want SentinelProtocolViolation (%d)", move, SentinelProtocolViolation)
	}
}

const echoDialectBScript = `
while IFS= read -r line; do
  echo "4 4"
done
`

func TestDialectBRoundTrip(t *testing.T) {
	d := NewDialectB("/bin/sh", []string{"-c", echoDialectBScript})
	ctx := context.Background()
	if !d.Ready(ctx, 100*time.Millisecond) {
		t.Fatal("Ready returned false")
	}
	defer d.Cleanup()

	move := d.GetMove(ctx, -1, 0, 0)
	if move != 40 {
		t.Fatalf("GetMove = %d, want 40 (row=4,col=4)", move)
	}
}

const extraTokenDialectBScript = `
while IFS= read -r line; do
  echo "4 4 99"
done
`

const singleTokenDialectBScript = `
while IFS= read -r line; do
  echo "40"
done
`

func TestDialectBSingleTokenIsLinearCell(t *testing.T) {
	d := NewDialectB("/bin/sh", []string{"-c", singleTokenDialectBScript})
	ctx := context.Background()
	if !d.Ready(ctx, 100*time.Millisecond) {
		t.Fatal("Ready returned false")
	}
	defer d.Cleanup()

	move := d.GetMove(ctx, -1, 0, 0)
	if move != 40 {
		t.Fatalf("GetMove = %d, want 40 for a single-token reply", move)
	}
}

func TestDialectBExtraTokensIsProtocolViolation(t *testing.T) {
	d := NewDialectB("/bin/sh", []string{"-c", extraTokenDialectBScript})
	ctx := context.Background()
	if !d.Ready(ctx, 100*time.Millisecond) {
		t.Fatal("Ready returned false")
	}
	defer d.Cleanup()

	move := d.GetMove(ctx, -1, 0, 0)
	if move != SentinelProtocolViolation {
		t.Fatalf("GetMove = %d, want SentinelProtocolViolation (%d) for an extra-token reply", move, SentinelProtocolViolation)
	}
}
