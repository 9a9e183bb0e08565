package tournament

// Bot is one tournament entrant: a subprocess engine addressed by path and
// args, plus its running Elo rating and game count.
type Bot struct {
	Name    string
	ExePath string
	Args    []string
	Rating  int32
	NGames  int
}

// NewBot builds a Bot at the configured initial rating with zero games
// played.
func NewBot(name, exePath string, args []string, initialRating int32) Bot {
	return Bot{Name: name, ExePath: exePath, Args: args, Rating: initialRating}
}
