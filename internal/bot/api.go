package bot

import (
	"tysyacha/internal/domain"
)

// Brain is the interface that all bot strategies implement. Each method is
// consulted only when its round phase is active and the bot's seat is due to
// act; implementations may assume both.
type Brain interface {
	// Bid returns the points to bid, zero to pass.
	Bid(round *domain.Round, seat domain.Seat) int
	// Raise returns the new contract value after seeing the treasure, or
	// zero to keep the contract as it stands.
	Raise(round *domain.Round, seat domain.Seat) int
	// Gifts picks one card for each opponent before play starts.
	Gifts(round *domain.Round, seat domain.Seat) map[domain.Seat]domain.Card
	// Play picks a card from the seat's legal plays.
	Play(round *domain.Round, seat domain.Seat) domain.Card
}

// ActionKind identifies what an agent wants the host to submit.
type ActionKind string

const (
	ActionNone       ActionKind = "none"
	ActionBid        ActionKind = "bid"
	ActionRaise      ActionKind = "raise"
	ActionFinalize   ActionKind = "finalize"
	ActionDistribute ActionKind = "distribute"
	ActionPlay       ActionKind = "play"
)

// Action is a phase-appropriate decision produced by an Agent.
type Action struct {
	Kind   ActionKind
	Points int
	Gifts  map[domain.Seat]domain.Card
	Card   domain.Card
}
