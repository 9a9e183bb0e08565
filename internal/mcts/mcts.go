// Package mcts implements a single-goroutine UCB1 Monte-Carlo tree search
// specialized to Ultimate Tic-Tac-Toe, standing in for the distilled spec's
// mention of a rollout-trained opening book: rather than a persisted
// pre-trained table, this builds and discards a fresh tree per ChooseMove
// call via repeated random self-play.
package mcts

import (
	"errors"
	"math"
	"math/rand"

	"github.com/greymatterlabs/uttt-arena/internal/board"
)

// ErrTerminal is returned by ChooseMove on an already-decided position.
var ErrTerminal = errors.New("mcts: position is terminal")

// node is one tree node. wins/visits are recorded from the perspective of
// parent.toMove, the player who chose the move leading to this node — this
// is what lets a parent pick the child that maximizes its own player's win
// rate directly from child.wins/child.visits.
type node struct {
	move     int
	toMove   board.Player
	parent   *node
	children []*node
	untried  []int
	visits   int32
	wins     float64
}

func newNode(parent *node, move int, toMove board.Player) *node {
	return &node{move: move, toMove: toMove, parent: parent}
}

// Agent runs a fixed number of UCB1 tree-search iterations per ChooseMove
// call. Not safe for concurrent use by multiple goroutines on the same
// *board.Board.
type Agent struct {
	Iterations       int
	ExplorationParam float64
	Rng              *rand.Rand
}

// New builds an Agent with the given iteration budget and UCB1 exploration
// constant (the canonical choice is sqrt(2)).
func New(iterations int, explorationParam float64, rng *rand.Rand) *Agent {
	return &Agent{Iterations: iterations, ExplorationParam: explorationParam, Rng: rng}
}

// ChooseMove runs the search from b's current position and returns the move
// with the most visits at the root, breaking ties by GetMoves() order. b is
// mutated via make/undo during the search and restored before returning.
func (a *Agent) ChooseMove(b *board.Board) (int, error) {
	if b.Winner() != board.Empty {
		return 0, ErrTerminal
	}

	root := newNode(nil, -1, b.ToMove())
	root.untried = append([]int(nil), b.GetMoves()...)
	if len(root.untried) == 0 {
		return 0, ErrTerminal
	}

	for i := 0; i < a.Iterations; i++ {
		depth := a.runIteration(b, root)
		for j := 0; j < depth; j++ {
			b.UndoMove()
		}
	}

	var best *node
	for _, m := range b.GetMoves() {
		for _, c := range root.children {
			if c.move == m && (best == nil || c.visits > best.visits) {
				best = c
			}
		}
	}
	return best.move, nil
}

// runIteration performs one select/expand/simulate/backpropagate cycle and
// returns how many moves were made on b, for the caller to undo.
func (a *Agent) runIteration(b *board.Board, root *node) int {
	depth := 0
	cur := root

	for len(cur.untried) == 0 && len(cur.children) > 0 {
		cur = a.selectChild(cur)
		b.MakeMove(cur.move)
		depth++
	}

	if b.Winner() == board.Empty && len(cur.untried) > 0 {
		idx := a.Rng.Intn(len(cur.untried))
		move := cur.untried[idx]
		cur.untried[idx] = cur.untried[len(cur.untried)-1]
		cur.untried = cur.untried[:len(cur.untried)-1]

		b.MakeMove(move)
		depth++

		child := newNode(cur, move, b.ToMove())
		if b.Winner() == board.Empty {
			child.untried = append([]int(nil), b.GetMoves()...)
		}
		cur.children = append(cur.children, child)
		cur = child
	}

	rolloutDepth := a.rollout(b)
	depth += rolloutDepth

	winner := b.Winner()
	for n := cur; n != nil; n = n.parent {
		n.visits++
		if n.parent != nil {
			n.wins += outcomeFor(n.parent.toMove, winner)
		}
	}

	return depth
}

func (a *Agent) selectChild(n *node) *node {
	lnParentVisits := math.Log(float64(n.visits))
	var best *node
	bestScore := math.Inf(-1)
	for _, c := range n.children {
		score := c.wins/float64(c.visits) + a.ExplorationParam*math.Sqrt(lnParentVisits/float64(c.visits))
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

func (a *Agent) rollout(b *board.Board) int {
	played := 0
	for b.Winner() == board.Empty {
		moves := b.GetMoves()
		if len(moves) == 0 {
			break
		}
		m := moves[a.Rng.Intn(len(moves))]
		if !b.MakeMove(m) {
			break
		}
		played++
	}
	return played
}

func outcomeFor(player board.Player, winner board.Player) float64 {
	switch winner {
	case player:
		return 1
	case board.Dead:
		return 0.5
	default:
		return 0
	}
}
