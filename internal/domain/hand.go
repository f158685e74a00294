package domain

import "sort"

// Hand is an immutable view of one player's cards. Derived views (suit
// groups, marriage suits) are computed once at construction; any mutation
// builds a new Hand from a new card list.
type Hand struct {
	cards     []Card
	bySuit    map[Suit][]Card
	marriages []Suit
}

// NewHand builds a hand view from a raw card list. Within each suit the
// cards are kept in descending precedence order.
func NewHand(cards []Card) Hand {
	h := Hand{
		cards:  append([]Card(nil), cards...),
		bySuit: make(map[Suit][]Card, 4),
	}
	for _, c := range h.cards {
		h.bySuit[c.Suit] = append(h.bySuit[c.Suit], c)
	}
	for s := Spades; s <= Hearts; s++ {
		group := h.bySuit[s]
		if len(group) == 0 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool { return group[i].Rank > group[j].Rank })
		if containsRank(group, Queen) && containsRank(group, King) {
			h.marriages = append(h.marriages, s)
		}
	}
	return h
}

func containsRank(cards []Card, r Rank) bool {
	for _, c := range cards {
		if c.Rank == r {
			return true
		}
	}
	return false
}

// Cards returns a copy of the hand's card list.
func (h Hand) Cards() []Card {
	return append([]Card(nil), h.cards...)
}

// Len returns the number of cards held.
func (h Hand) Len() int {
	return len(h.cards)
}

// Contains reports whether the hand holds the given card.
func (h Hand) Contains(card Card) bool {
	for _, c := range h.bySuit[card.Suit] {
		if c == card {
			return true
		}
	}
	return false
}

// HasSuit reports whether the hand holds at least one card of the suit.
func (h Hand) HasSuit(s Suit) bool {
	return len(h.bySuit[s]) > 0
}

// SuitCards returns a copy of the hand's cards of the given suit, highest
// precedence first.
func (h Hand) SuitCards(s Suit) []Card {
	return append([]Card(nil), h.bySuit[s]...)
}

// Marriages returns the suits for which the hand holds both queen and king.
func (h Hand) Marriages() []Suit {
	return append([]Suit(nil), h.marriages...)
}

// HasMarriage reports whether the hand holds the queen-king pair of the suit.
func (h Hand) HasMarriage(s Suit) bool {
	for _, m := range h.marriages {
		if m == s {
			return true
		}
	}
	return false
}

// Points returns the sum of the cards' point values. Marriage bonuses are
// not included; they only count once declared during play.
func (h Hand) Points() int {
	total := 0
	for _, c := range h.cards {
		total += c.Rank.Points()
	}
	return total
}

// With returns a new hand holding the current cards plus the given ones.
func (h Hand) With(cards ...Card) Hand {
	next := make([]Card, 0, len(h.cards)+len(cards))
	next = append(next, h.cards...)
	next = append(next, cards...)
	return NewHand(next)
}

// Without returns a new hand with one instance of the given card removed.
// The receiver is returned unchanged if the card is not held.
func (h Hand) Without(card Card) Hand {
	next := make([]Card, 0, len(h.cards))
	removed := false
	for _, c := range h.cards {
		if !removed && c == card {
			removed = true
			continue
		}
		next = append(next, c)
	}
	if !removed {
		return h
	}
	return NewHand(next)
}
