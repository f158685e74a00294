package bot

import (
	"tysyacha/internal/bot/internal"
	"tysyacha/internal/domain"
)

// StandardBot bids close to its hand estimate, raises when the treasure
// improves it, and contests every trick it can win cheaply.
type StandardBot struct{}

func (b *StandardBot) Bid(round *domain.Round, seat domain.Seat) int {
	estimate := internal.EstimateAuctionBid(internal.Evaluate(round.Hand(seat)), StandardTuning)
	next := domain.OpeningBid
	if high, ok := round.HighestBid(); ok {
		next = high.Points + domain.BidStep
	}
	if estimate >= next {
		return next
	}
	return 0
}

func (b *StandardBot) Raise(round *domain.Round, seat domain.Seat) int {
	contract := round.Contract()
	if contract == nil {
		return 0
	}
	// The treasure is already merged into the hand here.
	estimate := internal.EstimateBid(internal.Evaluate(round.Hand(seat)), StandardTuning)
	if estimate > contract.Points {
		return estimate
	}
	return 0
}

func (b *StandardBot) Gifts(round *domain.Round, seat domain.Seat) map[domain.Seat]domain.Card {
	return giftCheapest(round, seat)
}

func (b *StandardBot) Play(round *domain.Round, seat domain.Seat) domain.Card {
	legal := round.LegalPlays(seat)
	trick := round.CurrentTrick()

	if len(trick) == 0 {
		if card, ok := marriageLead(round, seat); ok {
			return card
		}
		for _, c := range legal {
			if c.Rank == domain.Ace {
				return c
			}
		}
		return internal.LowestCard(legal)
	}

	if winner, ok := internal.CheapestWinner(legal, trick, round.Trump()); ok {
		return winner
	}
	return internal.LowestCard(legal)
}

// marriageLead returns the king of the most valuable undeclared marriage when
// leading it would declare, and false when no declaration is available.
func marriageLead(round *domain.Round, seat domain.Seat) (domain.Card, bool) {
	if len(round.TricksTaken(seat)) == 0 {
		return domain.Card{}, false
	}
	declared := map[domain.Suit]bool{}
	for _, s := range round.Marriages(seat) {
		declared[s] = true
	}
	bestValue := 0
	var bestSuit domain.Suit
	for _, s := range round.Hand(seat).Marriages() {
		if declared[s] {
			continue
		}
		if v := s.MarriageValue(); v > bestValue {
			bestValue = v
			bestSuit = s
		}
	}
	if bestValue == 0 {
		return domain.Card{}, false
	}
	return domain.Card{Suit: bestSuit, Rank: domain.King}, true
}

// giftCheapest hands each opponent one of the two lowest-value cards,
// keeping held marriages intact when the hand allows it.
func giftCheapest(round *domain.Round, seat domain.Seat) map[domain.Seat]domain.Card {
	hand := round.Hand(seat)
	protected := map[domain.Card]bool{}
	for _, s := range hand.Marriages() {
		protected[domain.Card{Suit: s, Rank: domain.King}] = true
		protected[domain.Card{Suit: s, Rank: domain.Queen}] = true
	}

	pool := make([]domain.Card, 0, hand.Len())
	for _, c := range hand.Cards() {
		if !protected[c] {
			pool = append(pool, c)
		}
	}
	if len(pool) < 2 {
		pool = hand.Cards()
	}

	first := internal.LowestCard(pool)
	rest := make([]domain.Card, 0, len(pool)-1)
	removed := false
	for _, c := range pool {
		if !removed && c == first {
			removed = true
			continue
		}
		rest = append(rest, c)
	}
	second := internal.LowestCard(rest)

	left := seat.Next()
	right := left.Next()
	return map[domain.Seat]domain.Card{left: first, right: second}
}
