/*

uttt-arena is a thin CLI around the engine: play a game against a local bot,
run one match between two local bots, or replay a fixed move list and print
the resulting board. Argument parsing is intentionally minimal (flag, no
subcommand framework) since CLI ergonomics are out of scope.

*/
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/greymatterlabs/uttt-arena/internal/agent"
	"github.com/greymatterlabs/uttt-arena/internal/board"
	"github.com/greymatterlabs/uttt-arena/internal/eval"
	"github.com/greymatterlabs/uttt-arena/internal/match"
	"github.com/greymatterlabs/uttt-arena/internal/search"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "play":
		runPlay(os.Args[2:])
	case "match":
		runMatch(os.Args[2:])
	case "replay":
		runReplay(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: uttt-arena <play|match|replay> [flags]")
}

func runPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	depth := fs.Int("depth", 6, "search depth for the local bot")
	human := fs.String("side", "X", "side the human plays: X or O")
	fs.Parse(args)

	chooser := func(b *board.Board) (int, error) {
		return search.ChooseMove(b, eval.Diagonal, search.Options{Depth: *depth, QuietExtension: true, MaxExtensionPly: 2})
	}

	var xFactory, oFactory match.Factory
	humanFactory := func() agent.Agent { return agent.NewHuman(24 * time.Hour, os.Stdin, os.Stdout) }
	botFactory := func() agent.Agent { return agent.NewLocal(24*time.Hour, chooser) }

	if strings.EqualFold(*human, "O") {
		xFactory, oFactory = botFactory, humanFactory
	} else {
		xFactory, oFactory = humanFactory, botFactory
	}

	winner, err := match.Run(context.Background(), xFactory, oFactory, time.Second, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "match ended in error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("winner: %s\n", winner)
}

func runMatch(args []string) {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	depthX := fs.Int("depth-x", 6, "search depth for X")
	depthO := fs.Int("depth-o", 6, "search depth for O")
	fs.Parse(args)

	xFactory := localFactory(*depthX)
	oFactory := localFactory(*depthO)

	l := &verboseListener{}
	winner, err := match.Run(context.Background(), xFactory, oFactory, time.Second, l)
	if err != nil {
		fmt.Fprintf(os.Stderr, "match ended in error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("winner: %s (%d moves)\n", winner, l.moveCount)
}

func localFactory(depth int) match.Factory {
	return func() agent.Agent {
		chooser := func(b *board.Board) (int, error) {
			return search.ChooseMove(b, eval.Diagonal, search.Options{Depth: depth, QuietExtension: true, MaxExtensionPly: 2})
		}
		return agent.NewLocal(time.Minute, chooser)
	}
}

type verboseListener struct{ moveCount int }

func (l *verboseListener) OnMoveMade(mover board.Player, move int) {
	l.moveCount++
	fmt.Printf("%d: %s plays %d\n", l.moveCount, mover, move)
}

func (l *verboseListener) OnGameEnd(winner board.Player) {}

func runReplay(args []string) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	fs.Parse(args)

	b := board.New(2)
	scanner := bufio.NewScanner(strings.NewReader(strings.Join(fs.Args(), " ")))
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		cell, err := strconv.Atoi(scanner.Text())
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid move %q: %v\n", scanner.Text(), err)
			os.Exit(1)
		}
		if !b.MakeMove(cell) {
			fmt.Fprintf(os.Stderr, "illegal move %d at ply %d\n", cell, b.MoveCount())
			os.Exit(1)
		}
	}

	fmt.Println(b.String())
	fmt.Printf("winner: %s\n", b.Winner())
}
