package domain

const (
	// TargetScore ends the game once any player's cumulative score
	// reaches it.
	TargetScore = 1000
	// BoltPenalty is applied to a dealer after three consecutive failed
	// deals.
	BoltPenalty = -120
	// FailedDealLimit is the number of consecutive all-pass deals by the
	// same dealer that triggers the bolt.
	FailedDealLimit = 3
)

// Game tracks a whole session across rounds: player names, dealer rotation,
// cumulative scores, the failed-deal counter, and the win condition.
type Game struct {
	players     [NumSeats]string
	dealer      Seat
	roundNum    int
	history     [][NumSeats]int
	totals      [NumSeats]int
	failedDeals int
	winners     []Seat
}

// NewGame creates a session for the three named players, seated clockwise.
// Seat 0 deals the first round.
func NewGame(players [NumSeats]string) *Game {
	return &Game{players: players}
}

// PlayerName returns the display name seated at the given seat.
func (g *Game) PlayerName(seat Seat) string {
	if !seat.Valid() {
		panic("domain: invalid seat")
	}
	return g.players[seat]
}

// Dealer returns the seat dealing the next round.
func (g *Game) Dealer() Seat { return g.dealer }

// RoundNumber returns the number of rounds started so far.
func (g *Game) RoundNumber() int { return g.roundNum }

// Totals returns the cumulative score per seat.
func (g *Game) Totals() [NumSeats]int { return g.totals }

// History returns the per-round score deltas, oldest round first.
func (g *Game) History() [][NumSeats]int {
	out := make([][NumSeats]int, len(g.history))
	copy(out, g.history)
	return out
}

// FailedDeals returns the current dealer's consecutive all-pass deal count.
func (g *Game) FailedDeals() int { return g.failedDeals }

// Finished reports whether any player has reached the target score.
func (g *Game) Finished() bool { return len(g.winners) > 0 }

// Winners returns the seats that crossed the target score, in seat order.
// Multiple players can cross in the same round and tie for the win.
func (g *Game) Winners() []Seat {
	return append([]Seat(nil), g.winners...)
}

// StartRound creates the next round with the current dealer and the given
// shuffle seed. The host supplies the seed so deals stay reproducible.
func (g *Game) StartRound(seed int64) *Round {
	g.roundNum++
	return NewRound(g.dealer, seed)
}

// ApplyResult records a completed round's scores, rotates the dealer one
// seat clockwise, and resets the failed-deal counter. The game ends the
// instant any cumulative score reaches the target.
func (g *Game) ApplyResult(res RoundResult) {
	for s := Seat(0); s < NumSeats; s++ {
		g.totals[s] += res.Scores[s]
	}
	g.history = append(g.history, res.Scores)
	g.failedDeals = 0
	g.dealer = g.dealer.Next()
	g.checkWinners()
}

// RecordFailedDeal counts an all-pass round against the current dealer. The
// same dealer redeals until the third consecutive failure, the "bolt", which
// scores the dealer the bolt penalty and zero for the others, rotates the
// dealer, and resets the counter. It returns true when the bolt fired.
func (g *Game) RecordFailedDeal() bool {
	g.failedDeals++
	if g.failedDeals < FailedDealLimit {
		return false
	}
	var scores [NumSeats]int
	scores[g.dealer] = BoltPenalty
	g.totals[g.dealer] += BoltPenalty
	g.history = append(g.history, scores)
	g.failedDeals = 0
	g.dealer = g.dealer.Next()
	return true
}

func (g *Game) checkWinners() {
	if len(g.winners) > 0 {
		return
	}
	for s := Seat(0); s < NumSeats; s++ {
		if g.totals[s] >= TargetScore {
			g.winners = append(g.winners, s)
		}
	}
}
