package domain

import "math/rand"

// Suit identifies one of the four card suits.
type Suit int

const (
	Spades Suit = iota
	Clubs
	Diamonds
	Hearts
)

// MarriageValue returns the bonus awarded for declaring the king-queen
// marriage of this suit.
func (s Suit) MarriageValue() int {
	switch s {
	case Spades:
		return 40
	case Clubs:
		return 60
	case Diamonds:
		return 80
	case Hearts:
		return 100
	default:
		return 0
	}
}

func (s Suit) String() string {
	switch s {
	case Spades:
		return "S"
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	default:
		return "?"
	}
}

// Rank identifies a card rank. The declaration order is the trick-taking
// precedence order, which follows point values rather than face values:
// nine is lowest, then jack, queen, king, ten, and ace on top.
type Rank int

const (
	Nine Rank = iota
	Jack
	Queen
	King
	Ten
	Ace
)

// Points returns the rank's card-point value for trick scoring.
func (r Rank) Points() int {
	switch r {
	case Ace:
		return 11
	case Ten:
		return 10
	case King:
		return 4
	case Queen:
		return 3
	case Jack:
		return 2
	default:
		return 0
	}
}

func (r Rank) String() string {
	switch r {
	case Nine:
		return "9"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ten:
		return "10"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Card is an immutable suit and rank pair.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// DeckSize is the number of cards in a Tysyacha pack: six ranks by four suits.
const DeckSize = 24

// Deck is an ordered pack of cards consumed during the deal.
type Deck struct {
	cards []Card
}

// NewDeck builds the 24-card pack and shuffles it from the given seed.
// The same seed always yields the same order, so deals are reproducible.
func NewDeck(seed int64) *Deck {
	cards := make([]Card, 0, DeckSize)
	for s := Spades; s <= Hearts; s++ {
		for r := Nine; r <= Ace; r++ {
			cards = append(cards, Card{Suit: s, Rank: r})
		}
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	return &Deck{cards: cards}
}

// Pop removes and returns the top card. A correctly driven round never deals
// more than 24 cards, so popping an exhausted deck panics.
func (d *Deck) Pop() Card {
	if len(d.cards) == 0 {
		panic("domain: pop from empty deck")
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c
}

// Len returns the number of cards remaining in the deck.
func (d *Deck) Len() int {
	return len(d.cards)
}
