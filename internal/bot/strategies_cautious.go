package bot

import (
	"tysyacha/internal/bot/internal"
	"tysyacha/internal/domain"
)

// CautiousBot only contracts on hands it expects to carry comfortably, never
// raises after the treasure, and only commits a trick it cannot lose.
type CautiousBot struct{}

func (b *CautiousBot) Bid(round *domain.Round, seat domain.Seat) int {
	estimate := internal.EstimateAuctionBid(internal.Evaluate(round.Hand(seat)), CautiousTuning)
	next := domain.OpeningBid
	if high, ok := round.HighestBid(); ok {
		next = high.Points + domain.BidStep
	}
	if estimate >= next {
		return next
	}
	return 0
}

func (b *CautiousBot) Raise(round *domain.Round, seat domain.Seat) int {
	return 0
}

func (b *CautiousBot) Gifts(round *domain.Round, seat domain.Seat) map[domain.Seat]domain.Card {
	return giftCheapest(round, seat)
}

func (b *CautiousBot) Play(round *domain.Round, seat domain.Seat) domain.Card {
	legal := round.LegalPlays(seat)
	trick := round.CurrentTrick()

	if len(trick) == 0 {
		if card, ok := marriageLead(round, seat); ok {
			return card
		}
		return internal.LowestCard(legal)
	}

	// Closing the trick is the only spot where a win is guaranteed.
	if len(trick) == domain.TrickSize-1 {
		if winner, ok := internal.CheapestWinner(legal, trick, round.Trump()); ok {
			return winner
		}
	}
	return internal.LowestCard(legal)
}
