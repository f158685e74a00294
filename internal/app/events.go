package app

import "tysyacha/internal/domain"

// EventKind identifies emitted domain events for host dispatch.
type EventKind string

const (
	EventMatchStarted       EventKind = "match_started"
	EventRoundStarted       EventKind = "round_started"
	EventHandDealt          EventKind = "hand_dealt"
	EventBidPlaced          EventKind = "bid_placed"
	EventBiddingWon         EventKind = "bidding_won"
	EventDealAborted        EventKind = "deal_aborted"
	EventBoltApplied        EventKind = "bolt_applied"
	EventTreasureRevealed   EventKind = "treasure_revealed"
	EventContractRaised     EventKind = "contract_raised"
	EventContractFinalized  EventKind = "contract_finalized"
	EventCardReceived       EventKind = "card_received"
	EventCardsDistributed   EventKind = "cards_distributed"
	EventCardPlayed         EventKind = "card_played"
	EventMarriageDeclared   EventKind = "marriage_declared"
	EventTrickCompleted     EventKind = "trick_completed"
	EventTrickDismissed     EventKind = "trick_dismissed"
	EventRoundScored        EventKind = "round_scored"
	EventGameEnded          EventKind = "game_ended"
)

// Event is an app-level event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []domain.Seat // empty means broadcast
}

type MatchStartedPayload struct {
	Players [domain.NumSeats]string `json:"players"`
	Dealer  domain.Seat             `json:"dealer"`
}

type RoundStartedPayload struct {
	RoundNumber int         `json:"round_number"`
	Dealer      domain.Seat `json:"dealer"`
	FirstBidder domain.Seat `json:"first_bidder"`
}

type HandDealtPayload struct {
	Seat domain.Seat   `json:"seat"`
	Hand []domain.Card `json:"hand"`
}

type BidPlacedPayload struct {
	Seat       domain.Seat `json:"seat"`
	Points     int         `json:"points"` // zero is a pass
	NextBidder domain.Seat `json:"next_bidder"`
}

type BiddingWonPayload struct {
	Seat   domain.Seat `json:"seat"`
	Points int         `json:"points"`
}

type DealAbortedPayload struct {
	Dealer      domain.Seat `json:"dealer"`
	FailedDeals int         `json:"failed_deals"`
}

type BoltAppliedPayload struct {
	Dealer  domain.Seat          `json:"dealer"`
	Penalty int                  `json:"penalty"`
	Totals  [domain.NumSeats]int `json:"totals"`
}

type TreasureRevealedPayload struct {
	Holder domain.Seat   `json:"holder"`
	Cards  []domain.Card `json:"cards"`
}

type ContractRaisedPayload struct {
	Seat   domain.Seat `json:"seat"`
	Points int         `json:"points"`
}

type ContractFinalizedPayload struct {
	Seat   domain.Seat `json:"seat"`
	Points int         `json:"points"`
}

// CardReceived is delivered privately to each distribution recipient.
type CardReceivedPayload struct {
	From domain.Seat `json:"from"`
	Card domain.Card `json:"card"`
}

// CardsDistributed announces publicly that distribution happened, without
// disclosing the cards.
type CardsDistributedPayload struct {
	From   domain.Seat `json:"from"`
	Leader domain.Seat `json:"leader"`
}

type CardPlayedPayload struct {
	Seat     domain.Seat `json:"seat"`
	Card     domain.Card `json:"card"`
	NextSeat domain.Seat `json:"next_seat"`
}

type MarriageDeclaredPayload struct {
	Seat  domain.Seat `json:"seat"`
	Suit  domain.Suit `json:"suit"`
	Value int         `json:"value"`
}

type TrickCompletedPayload struct {
	Winner domain.Seat   `json:"winner"`
	Plays  []domain.Play `json:"plays"`
}

type TrickDismissedPayload struct {
	Winner     domain.Seat `json:"winner"`
	TrickCount int         `json:"trick_count"`
}

type RoundScoredPayload struct {
	Scores       [domain.NumSeats]int `json:"scores"`
	Totals       [domain.NumSeats]int `json:"totals"`
	Contract     domain.Bid           `json:"contract"`
	ContractMade bool                 `json:"contract_made"`
}

type GameEndedPayload struct {
	Winners []domain.Seat        `json:"winners"`
	Totals  [domain.NumSeats]int `json:"totals"`
}
