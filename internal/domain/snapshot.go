package domain

import "fmt"

// RoundSnapshot is a host-serializable image of a round. Hands are stored as
// raw card lists; RestoreRound rebuilds the derived hand views and re-checks
// the deck union invariant, so a restored round behaves identically to the
// original under every subsequent transition.
type RoundSnapshot struct {
	Phase         Phase             `json:"phase"`
	Dealer        Seat              `json:"dealer"`
	Seed          int64             `json:"seed"`
	Hands         [NumSeats][]Card  `json:"hands"`
	Treasure      []Card            `json:"treasure"`
	TreasureTaken bool              `json:"treasure_taken"`
	Bids          []Bid             `json:"bids"`
	Contract      *Bid              `json:"contract,omitempty"`
	Aborted       bool              `json:"aborted"`
	Active        Seat              `json:"active"`
	Trick         []Play            `json:"trick"`
	TrickWinner   Seat              `json:"trick_winner"`
	Trump         *Suit             `json:"trump,omitempty"`
	Taken         [NumSeats][]Trick `json:"taken"`
	Marriages     [NumSeats][]Suit  `json:"marriages"`
	TrickCount    int               `json:"trick_count"`
}

// Snapshot captures the round's full state.
func (r *Round) Snapshot() RoundSnapshot {
	snap := RoundSnapshot{
		Phase:         r.phase,
		Dealer:        r.dealer,
		Seed:          r.seed,
		Treasure:      append([]Card(nil), r.treasure...),
		TreasureTaken: r.treasureTaken,
		Bids:          append([]Bid(nil), r.bids...),
		Contract:      r.Contract(),
		Aborted:       r.aborted,
		Active:        r.active,
		Trick:         append([]Play(nil), r.trick...),
		TrickWinner:   r.trickWinner,
		Trump:         r.Trump(),
		TrickCount:    r.trickCount,
	}
	for s := Seat(0); s < NumSeats; s++ {
		snap.Hands[s] = r.hands[s].Cards()
		snap.Taken[s] = append([]Trick(nil), r.taken[s]...)
		snap.Marriages[s] = append([]Suit(nil), r.marriages[s]...)
	}
	return snap
}

// RestoreRound reconstructs an in-memory round from a snapshot previously
// produced by Snapshot (possibly via the host's serialized form).
func RestoreRound(snap RoundSnapshot) (*Round, error) {
	switch snap.Phase {
	case PhaseNotDealt, PhaseBidding, PhaseRevealTreasure, PhaseDistribute, PhasePlaying, PhaseScoring:
	default:
		return nil, fmt.Errorf("restore round: unknown phase %q", snap.Phase)
	}
	if !snap.Dealer.Valid() {
		return nil, fmt.Errorf("restore round: invalid dealer seat %d", snap.Dealer)
	}
	if !snap.Active.Valid() {
		return nil, fmt.Errorf("restore round: invalid active seat %d", snap.Active)
	}
	// Every phase past the auction needs the contract the round settles on.
	switch snap.Phase {
	case PhaseRevealTreasure, PhaseDistribute, PhasePlaying, PhaseScoring:
		if snap.Contract == nil {
			return nil, fmt.Errorf("restore round: phase %q has no contract", snap.Phase)
		}
	}
	if snap.Contract != nil {
		if !snap.Contract.Seat.Valid() {
			return nil, fmt.Errorf("restore round: invalid contract seat %d", snap.Contract.Seat)
		}
		if snap.Contract.Points < OpeningBid || snap.Contract.Points%BidStep != 0 {
			return nil, fmt.Errorf("restore round: invalid contract of %d", snap.Contract.Points)
		}
	}
	if snap.Phase != PhaseNotDealt {
		if err := checkDeckUnion(snap); err != nil {
			return nil, err
		}
	}

	r := &Round{
		phase:         snap.Phase,
		dealer:        snap.Dealer,
		seed:          snap.Seed,
		treasure:      append([]Card(nil), snap.Treasure...),
		treasureTaken: snap.TreasureTaken,
		bids:          append([]Bid(nil), snap.Bids...),
		aborted:       snap.Aborted,
		active:        snap.Active,
		trick:         append([]Play(nil), snap.Trick...),
		trickWinner:   snap.TrickWinner,
		trickCount:    snap.TrickCount,
	}
	if snap.Contract != nil {
		c := *snap.Contract
		r.contract = &c
	}
	if snap.Trump != nil {
		s := *snap.Trump
		r.trump = &s
	}
	for s := Seat(0); s < NumSeats; s++ {
		r.hands[s] = NewHand(snap.Hands[s])
		r.taken[s] = append([]Trick(nil), snap.Taken[s]...)
		r.marriages[s] = append([]Suit(nil), snap.Marriages[s]...)
	}
	return r, nil
}

// checkDeckUnion verifies that the hands, the treasure (until taken), the
// archived tricks and the in-progress trick together hold each of the 24
// pack cards exactly once.
func checkDeckUnion(snap RoundSnapshot) error {
	seen := make(map[Card]bool, DeckSize)
	add := func(c Card) error {
		if seen[c] {
			return fmt.Errorf("restore round: duplicate card %s", c)
		}
		seen[c] = true
		return nil
	}
	for s := Seat(0); s < NumSeats; s++ {
		for _, c := range snap.Hands[s] {
			if err := add(c); err != nil {
				return err
			}
		}
		for _, t := range snap.Taken[s] {
			for _, p := range t.Plays {
				if err := add(p.Card); err != nil {
					return err
				}
			}
		}
	}
	if !snap.TreasureTaken {
		for _, c := range snap.Treasure {
			if err := add(c); err != nil {
				return err
			}
		}
	}
	for _, p := range snap.Trick {
		if err := add(p.Card); err != nil {
			return err
		}
	}
	if len(seen) != DeckSize {
		return fmt.Errorf("restore round: %d cards accounted for, want %d", len(seen), DeckSize)
	}
	return nil
}
