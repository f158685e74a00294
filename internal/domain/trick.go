package domain

// TrickSize is the number of plays in a complete trick, one per seat.
const TrickSize = NumSeats

// Play is a single card committed to a trick by a seat.
type Play struct {
	Seat Seat `json:"seat"`
	Card Card `json:"card"`
}

// Trick is a completed, archived trick.
type Trick struct {
	Plays  [TrickSize]Play `json:"plays"`
	Winner Seat            `json:"winner"`
}

// Points returns the card points contained in the trick.
func (t Trick) Points() int {
	total := 0
	for _, p := range t.Plays {
		total += p.Card.Rank.Points()
	}
	return total
}

// WinningPlay determines which of exactly three plays takes the trick. The
// first play fixes the leading suit; trump, when set, beats any non-trump
// card. Evaluating anything other than a complete trick is a MalformedTrick
// error.
func WinningPlay(plays []Play, trump *Suit) (Play, error) {
	if len(plays) != TrickSize {
		return Play{}, ruleErr(MalformedTrick, "trick has %d plays, want %d", len(plays), TrickSize)
	}
	lead := plays[0].Card.Suit
	best := plays[0]
	for _, p := range plays[1:] {
		if Beats(p.Card, best.Card, lead, trump) {
			best = p
		}
	}
	return best, nil
}

// Beats reports whether candidate takes precedence over the current best
// play given the leading suit and optional trump. A card in neither the
// leading suit nor trump can never win.
func Beats(candidate, best Card, lead Suit, trump *Suit) bool {
	if trump != nil {
		candidateTrump := candidate.Suit == *trump
		bestTrump := best.Suit == *trump
		switch {
		case candidateTrump && !bestTrump:
			return true
		case candidateTrump && bestTrump:
			return candidate.Rank > best.Rank
		case bestTrump:
			return false
		}
	}
	return candidate.Suit == lead && best.Suit == lead && candidate.Rank > best.Rank
}

// CanPlay reports whether candidate is a legal play from hand given the
// cards already in the current trick. Opening a trick, anything goes;
// otherwise the leading suit must be followed when held. Trump-forcing for
// players out of the leading suit is layered on by Round.LegalPlays.
func CanPlay(hand Hand, trick []Play, candidate Card) bool {
	if len(trick) == 0 {
		return true
	}
	lead := trick[0].Card.Suit
	if candidate.Suit == lead {
		return true
	}
	return !hand.HasSuit(lead)
}
