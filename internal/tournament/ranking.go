package tournament

import (
	"fmt"
	"sort"
	"strings"

	"github.com/muesli/termenv"
)

// Ranking is a sorted snapshot of bot standings, descending by rating. Used
// both for periodic progress updates and the final report.
type Ranking struct {
	Bots []Bot
}

// snapshotRanking copies bots and sorts the copy by descending rating,
// leaving the pool's own slice (and its ordering by bot index) untouched.
func snapshotRanking(bots []Bot) Ranking {
	snap := make([]Bot, len(bots))
	copy(snap, bots)
	sort.SliceStable(snap, func(i, j int) bool { return snap[i].Rating > snap[j].Rating })
	return Ranking{Bots: snap}
}

// String renders the ranking as a table, one row per bot, with the leader
// highlighted when the terminal supports color.
func (r Ranking) String() string {
	profile := termenv.ColorProfile()
	var b strings.Builder
	for i, bot := range r.Bots {
		line := fmt.Sprintf("#%-3d %-24s Elo %-5d  %-40s  games=%d",
			i+1, bot.Name, bot.Rating, strings.Join(append([]string{bot.ExePath}, bot.Args...), " "), bot.NGames)
		if i == 0 {
			line = termenv.String(line).Foreground(profile.Color("2")).Bold().String()
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
