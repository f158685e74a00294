package internal

import (
	"tysyacha/internal/domain"
)

// Weights tunes how a hand estimate is converted into a contract bid.
type Weights struct {
	SureTrickPoints float64 // expected trick points per ace
	TenTrickPoints  float64 // expected trick points per guarded ten
	MarriageWeight  float64 // fraction of held marriage value counted
	LongSuitBonus   float64 // per card beyond three in the longest suit
	TreasureUplift  float64 // expected gain from the face-down treasure
	Safety          float64 // subtracted before rounding down to the bid step
}

// Strength summarizes what a hand can realistically score in a round.
type Strength struct {
	Aces           int
	GuardedTens    int // tens accompanied by the ace of their suit
	MarriagePoints int
	LongestSuit    int
	CardPoints     int
}

// Evaluate inspects a hand and extracts its bid-relevant features.
func Evaluate(h domain.Hand) Strength {
	var s Strength
	s.CardPoints = h.Points()
	for _, suit := range []domain.Suit{domain.Spades, domain.Clubs, domain.Diamonds, domain.Hearts} {
		cards := h.SuitCards(suit)
		if len(cards) > s.LongestSuit {
			s.LongestSuit = len(cards)
		}
		hasAce := false
		hasTen := false
		for _, c := range cards {
			switch c.Rank {
			case domain.Ace:
				hasAce = true
			case domain.Ten:
				hasTen = true
			}
		}
		if hasAce {
			s.Aces++
		}
		if hasTen && hasAce {
			s.GuardedTens++
		}
	}
	for _, suit := range h.Marriages() {
		s.MarriagePoints += suit.MarriageValue()
	}
	return s
}

// EstimateBid converts a strength profile into a contract estimate, rounded
// down to the bid step. Anything below the opening bid comes back as zero.
func EstimateBid(s Strength, w Weights) int {
	return toBid(score(s, w))
}

// EstimateAuctionBid is EstimateBid plus the expected treasure uplift, used
// while the treasure is still face down.
func EstimateAuctionBid(s Strength, w Weights) int {
	return toBid(score(s, w) + w.TreasureUplift)
}

func score(s Strength, w Weights) float64 {
	est := float64(s.Aces)*w.SureTrickPoints +
		float64(s.GuardedTens)*w.TenTrickPoints +
		float64(s.MarriagePoints)*w.MarriageWeight
	if s.LongestSuit > 3 {
		est += float64(s.LongestSuit-3) * w.LongSuitBonus
	}
	return est - w.Safety
}

func toBid(est float64) int {
	bid := int(est) / domain.BidStep * domain.BidStep
	if bid < domain.OpeningBid {
		return 0
	}
	return bid
}

// LowestCard returns the candidate worth the fewest points, breaking ties by
// precedence. Callers pass non-empty legal sets.
func LowestCard(cards []domain.Card) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if cheaper(c, best) {
			best = c
		}
	}
	return best
}

// CheapestWinner returns the lowest-value candidate that would head the trick
// as it stands, and false when no candidate wins or the trick is empty.
func CheapestWinner(cards []domain.Card, trick []domain.Play, trump *domain.Suit) (domain.Card, bool) {
	if len(trick) == 0 {
		return domain.Card{}, false
	}
	lead := trick[0].Card.Suit
	top := trick[0].Card
	for _, p := range trick[1:] {
		if domain.Beats(p.Card, top, lead, trump) {
			top = p.Card
		}
	}

	var winner domain.Card
	found := false
	for _, c := range cards {
		if !domain.Beats(c, top, lead, trump) {
			continue
		}
		if !found || cheaper(c, winner) {
			winner = c
			found = true
		}
	}
	return winner, found
}

func cheaper(a, b domain.Card) bool {
	if a.Rank.Points() != b.Rank.Points() {
		return a.Rank.Points() < b.Rank.Points()
	}
	return a.Rank < b.Rank
}
