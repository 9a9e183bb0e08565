// Package tournament runs a round-robin-by-proximity ladder of subprocess
// engines, updating Elo ratings as matches complete.
package tournament

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/greymatterlabs/uttt-arena/internal/agent"
	"github.com/greymatterlabs/uttt-arena/internal/board"
	"github.com/greymatterlabs/uttt-arena/internal/match"
	"github.com/greymatterlabs/uttt-arena/internal/uti"
)

// AgentBuilder constructs a fresh match.Factory for a Bot; called once per
// side per scheduled match, since a subprocess engine is not reusable across
// games.
type AgentBuilder func(Bot) match.Factory

// DefaultAgentBuilder wires a Bot to the primary UTI dialect over a
// subprocess, via agent.Pipe so the pool depends on agent.Agent alone rather
// than on uti's concrete driver type. gameBudget is each engine's whole-game
// clock; the handshake is bounded separately by the match warm-up budget.
func DefaultAgentBuilder(gameBudget time.Duration) AgentBuilder {
	return func(b Bot) match.Factory {
		return func() agent.Agent {
			return agent.NewPipe(uti.NewDriver(b.ExePath, b.Args, gameBudget))
		}
	}
}

// matchResult is what an in-flight match goroutine reports back to the pool.
type matchResult struct {
	xIdx, oIdx int
	winner     board.Player
	err        error
}

// Pool owns the bot roster and drives the Elo-proximity schedule described
// in the tournament pool contract: bounded-concurrency FIFO match draining,
// periodic ranking reports, and a final drain + ranking once NGames have
// been started.
type Pool struct {
	cfg        *Config
	bots       []Bot
	buildAgent AgentBuilder
	out        io.Writer
}

// NewPool builds a Pool over the given bots. buildAgent determines how a Bot
// record is turned into a playable agent for one match.
func NewPool(cfg *Config, bots []Bot, buildAgent AgentBuilder) *Pool {
	return &Pool{cfg: cfg, bots: bots, buildAgent: buildAgent, out: os.Stdout}
}

// SetOutput redirects progress/ranking output, for tests and embedding.
func (p *Pool) SetOutput(w io.Writer) *Pool {
	p.out = w
	return p
}

// Run executes the full schedule and returns the final ranking. The context
// is passed to every match; once it is canceled, each match ends early with
// an error and is excluded from rating. Run still waits for every enqueued
// match before returning.
func (p *Pool) Run(ctx context.Context) (Ranking, error) {
	if len(p.bots) < 2 {
		return Ranking{}, fmt.Errorf("tournament: need at least 2 bots, got %d", len(p.bots))
	}

	var pending []chan matchResult
	nPlayed := 0
	lastReported := 0

	for nPlayed < p.cfg.NGames {
		focus := p.leastPlayedIndex()
		for _, opp := range p.kClosest(focus) {
			p.enqueue(ctx, &pending, focus, opp)
			p.enqueue(ctx, &pending, opp, focus)
			nPlayed += 2
		}

		if nPlayed-lastReported >= p.cfg.NGamesPerUpdate {
			lastReported = nPlayed
			fmt.Fprintln(p.out, "------RANKING UPDATE------")
			fmt.Fprint(p.out, snapshotRanking(p.bots).String())
		}
	}

	for len(pending) > 0 {
		p.drainOne(&pending)
	}

	final := snapshotRanking(p.bots)
	fmt.Fprintln(p.out, "-----FINAL RANKINGS-----")
	fmt.Fprint(p.out, final.String())
	return final, nil
}

// enqueue starts one match as a goroutine, first draining the oldest
// outstanding match if the pool is already at max concurrency.
func (p *Pool) enqueue(ctx context.Context, pending *[]chan matchResult, xIdx, oIdx int) {
	if len(*pending) >= p.cfg.MaxThreads {
		p.drainOne(pending)
	}

	xBot, oBot := p.bots[xIdx], p.bots[oIdx]
	ch := make(chan matchResult, 1)
	warmup := time.Duration(p.cfg.WarmupBudgetMs) * time.Millisecond

	go func() {
		winner, err := match.Run(ctx, p.buildAgent(xBot), p.buildAgent(oBot), warmup, nil)
		ch <- matchResult{xIdx: xIdx, oIdx: oIdx, winner: winner, err: err}
	}()
	*pending = append(*pending, ch)
}

// drainOne blocks on the oldest outstanding match's result channel (strict
// FIFO), then applies its rating update. This is the only place p.bots is
// mutated. A match that never actually played (match.ErrReadinessFailure) is
// never rated normally: depending on Config.SpawnFailurePolicy it is either
// excluded outright (default) or counted with a zero rating delta on both
// sides. Any other error (e.g. ctx cancellation) is logged and excluded, per
// the pool's never-partial-update policy.
func (p *Pool) drainOne(pending *[]chan matchResult) {
	ch := (*pending)[0]
	*pending = (*pending)[1:]
	res := <-ch

	xBot, oBot := &p.bots[res.xIdx], &p.bots[res.oIdx]

	if res.err != nil {
		fmt.Fprintf(p.out, "match %s v. %s ended in error: %v\n", xBot.Name, oBot.Name, res.err)
		if errors.Is(res.err, match.ErrReadinessFailure) && p.cfg.SpawnFailurePolicy == TreatAsDraw {
			xBot.NGames++
			oBot.NGames++
			fmt.Fprintf(p.out, "Scored %s v. %s as a zero-delta draw (spawn failure). X=%d, O=%d\n",
				xBot.Name, oBot.Name, xBot.Rating, oBot.Rating)
		} else {
			fmt.Fprintf(p.out, "Excluded %s v. %s from rating (spawn failure)\n", xBot.Name, oBot.Name)
		}
		return
	}

	xDiff, oDiff := applyResult(xBot, oBot, res.winner)
	fmt.Fprintf(p.out, "Ended %s v. %s: %s. X=%d (%+d), O=%d (%+d)\n",
		xBot.Name, oBot.Name, resultLabel(res.winner),
		xBot.Rating, xDiff, oBot.Rating, oDiff)
}

func resultLabel(winner board.Player) string {
	switch winner {
	case board.X:
		return "1-0"
	case board.O:
		return "0-1"
	default:
		return "0.5-0.5"
	}
}

// leastPlayedIndex returns the index of the bot with the fewest games
// played, the lowest index breaking ties.
func (p *Pool) leastPlayedIndex() int {
	best := 0
	for i := 1; i < len(p.bots); i++ {
		if p.bots[i].NGames < p.bots[best].NGames {
			best = i
		}
	}
	return best
}

// kClosest returns up to Config.KClosest opponent indices for focus, nearest
// first by absolute Elo distance, ties broken by bot index.
func (p *Pool) kClosest(focus int) []int {
	type candidate struct {
		idx  int
		dist int32
	}
	candidates := make([]candidate, 0, len(p.bots)-1)
	for i := range p.bots {
		if i == focus {
			continue
		}
		d := p.bots[i].Rating - p.bots[focus].Rating
		if d < 0 {
			d = -d
		}
		candidates = append(candidates, candidate{idx: i, dist: d})
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].dist != candidates[b].dist {
			return candidates[a].dist < candidates[b].dist
		}
		return candidates[a].idx < candidates[b].idx
	})

	k := p.cfg.KClosest
	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = candidates[i].idx
	}
	return out
}

// Bots returns a copy of the current bot roster, safe to read after Run
// returns.
func (p *Pool) Bots() []Bot {
	out := make([]Bot, len(p.bots))
	copy(out, p.bots)
	return out
}
