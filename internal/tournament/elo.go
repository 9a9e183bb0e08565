package tournament

import (
	"math"

	"github.com/greymatterlabs/uttt-arena/internal/board"
)

// K is the games-adjusted K-factor: bots with fewer games played see larger
// rating swings.
func K(nGames int) float64 {
	return 800.0 / (float64(nGames) + 20.0)
}

// ExpectedScore is the standard Elo expectation of the "me" side given both
// ratings.
func ExpectedScore(rMe, rThem int32) float64 {
	return 1.0 / (1.0 + math.Pow(10.0, float64(rThem-rMe)/400.0))
}

// actualScores maps a match outcome to the (X, O) actual-score pair.
func actualScores(winner board.Player) (x, o float64) {
	switch winner {
	case board.X:
		return 1.0, 0.0
	case board.O:
		return 0.0, 1.0
	default:
		return 0.5, 0.5
	}
}

// applyResult updates xBot and oBot's ratings and game counts in place for
// one completed match, returning the signed delta applied to each. Deltas
// are truncated toward zero, not floored: flooring each side independently
// is not an odd function and breaks the anti-symmetry guarantee (ΔR_X =
// -ΔR_O when K_X = K_O) whenever K*(A-E) isn't an exact integer.
func applyResult(xBot, oBot *Bot, winner board.Player) (xDiff, oDiff int32) {
	eX := ExpectedScore(xBot.Rating, oBot.Rating)
	eO := ExpectedScore(oBot.Rating, xBot.Rating)
	kX := K(xBot.NGames)
	kO := K(oBot.NGames)
	aX, aO := actualScores(winner)

	xDiff = int32(kX * (aX - eX))
	oDiff = int32(kO * (aO - eO))

	xBot.Rating += xDiff
	oBot.Rating += oDiff
	xBot.NGames++
	oBot.NGames++
	return xDiff, oDiff
}
