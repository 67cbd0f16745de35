package wallet

// Game bounds what a bet may stake and what a resolution may pay out.
// PayoutMultiplier caps client-reported winnings: the caller decides the
// outcome, but it cannot invent a payout larger than the game allows.
type Game struct {
	Name             string
	MinBet           int64
	MaxBet           int64
	PayoutMultiplier int64
}

var games = map[string]Game{
	"lucky-number":    {Name: "lucky-number", MinBet: 10, MaxBet: 1000, PayoutMultiplier: 2},
	"quick-pick":      {Name: "quick-pick", MinBet: 20, MaxBet: 2000, PayoutMultiplier: 2},
	"lightning-round": {Name: "lightning-round", MinBet: 50, MaxBet: 5000, PayoutMultiplier: 2},
}

func lookupGame(name string) (Game, bool) {
	g, ok := games[name]
	return g, ok
}
