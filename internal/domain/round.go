package domain

// Phase represents the lifecycle stage of a round.
type Phase string

const (
	// PhaseNotDealt is the initial state before cards are dealt.
	PhaseNotDealt Phase = "not_dealt"
	// PhaseBidding is the auction for the contract.
	PhaseBidding Phase = "bidding"
	// PhaseRevealTreasure is when the contract holder has taken the
	// treasure and may raise the contract.
	PhaseRevealTreasure Phase = "reveal_treasure"
	// PhaseDistribute is when the contract holder gives one card to each
	// opponent.
	PhaseDistribute Phase = "distribute"
	// PhasePlaying is trick-by-trick play.
	PhasePlaying Phase = "playing"
	// PhaseScoring is the terminal state once all hands are empty.
	PhaseScoring Phase = "scoring"
)

const (
	// HandSize is the number of cards dealt to each player.
	HandSize = 7
	// TreasureSize is the number of cards dealt face-down to the treasure.
	TreasureSize = 3
	// TricksPerRound is the number of tricks in a full round: seven dealt
	// cards plus the one received during distribution.
	TricksPerRound = 8
)

// Round is the state machine for a single deal: deal, bidding, treasure
// reveal, card distribution, trick play, scoring. Every transition validates
// fully before committing, so an error never leaves the round half-applied.
// The round is not safe for concurrent use; the caller serializes access.
type Round struct {
	phase         Phase
	dealer        Seat
	seed          int64
	hands         [NumSeats]Hand
	treasure      []Card
	treasureTaken bool
	bids          []Bid
	contract      *Bid
	aborted       bool
	active        Seat
	trick         []Play
	trickWinner   Seat
	trump         *Suit
	taken         [NumSeats][]Trick
	marriages     [NumSeats][]Suit
	trickCount    int
}

// NewRound creates an undealt round. The seed fixes the shuffle so the same
// dealer and seed always reproduce the same deal.
func NewRound(dealer Seat, seed int64) *Round {
	return &Round{
		phase:  PhaseNotDealt,
		dealer: dealer,
		seed:   seed,
	}
}

// Phase returns the round's current phase.
func (r *Round) Phase() Phase { return r.phase }

// Dealer returns the seat that dealt this round.
func (r *Round) Dealer() Seat { return r.dealer }

// Seed returns the shuffle seed the round was created with.
func (r *Round) Seed() int64 { return r.seed }

// Hand returns the current hand of the given seat.
func (r *Round) Hand(seat Seat) Hand {
	if !seat.Valid() {
		panic("domain: invalid seat")
	}
	return r.hands[seat]
}

// Treasure returns the three treasure cards. Once the contract holder has
// taken them the cards also appear in that player's hand; the slice remains
// as the record of what was revealed.
func (r *Round) Treasure() []Card {
	return append([]Card(nil), r.treasure...)
}

// TreasureTaken reports whether the treasure has been merged into the
// contract holder's hand.
func (r *Round) TreasureTaken() bool { return r.treasureTaken }

// Bids returns the append-only bid history.
func (r *Round) Bids() []Bid {
	return append([]Bid(nil), r.bids...)
}

// HighestBid returns the highest non-pass bid so far, for callers that want
// to pre-validate a player's next bid.
func (r *Round) HighestBid() (Bid, bool) {
	return HighestBid(r.bids)
}

// Contract returns the current contract, or nil before bidding resolves.
func (r *Round) Contract() *Bid {
	if r.contract == nil {
		return nil
	}
	c := *r.contract
	return &c
}

// Aborted reports whether bidding ended with all three seats passing. The
// caller decides whether to redeal; the round accepts no further actions.
func (r *Round) Aborted() bool { return r.aborted }

// ActiveSeat returns the seat expected to act next.
func (r *Round) ActiveSeat() Seat { return r.active }

// CurrentTrick returns the in-progress trick, oldest play first.
func (r *Round) CurrentTrick() []Play {
	return append([]Play(nil), r.trick...)
}

// TrickComplete reports whether the current trick has all three plays and
// is waiting to be dismissed.
func (r *Round) TrickComplete() bool { return len(r.trick) == TrickSize }

// TrickWinner returns the winner of the completed current trick. Only
// meaningful while TrickComplete reports true.
func (r *Round) TrickWinner() Seat { return r.trickWinner }

// Trump returns the current trump suit, or nil while no marriage has been
// declared.
func (r *Round) Trump() *Suit {
	if r.trump == nil {
		return nil
	}
	s := *r.trump
	return &s
}

// TricksTaken returns the tricks archived to the given seat.
func (r *Round) TricksTaken(seat Seat) []Trick {
	if !seat.Valid() {
		panic("domain: invalid seat")
	}
	return append([]Trick(nil), r.taken[seat]...)
}

// Marriages returns the suits the given seat declared this round.
func (r *Round) Marriages(seat Seat) []Suit {
	if !seat.Valid() {
		panic("domain: invalid seat")
	}
	return append([]Suit(nil), r.marriages[seat]...)
}

// TrickCount returns the number of dismissed tricks.
func (r *Round) TrickCount() int { return r.trickCount }

// Deal builds a fresh deck from the round's seed, deals seven cards to each
// seat in order and three to the treasure, then opens bidding with the seat
// left of the dealer.
func (r *Round) Deal() error {
	if r.phase != PhaseNotDealt {
		return ruleErr(InvalidPhaseTransition, "deal in phase %s", r.phase)
	}

	deck := NewDeck(r.seed)
	var hands [NumSeats][]Card
	for s := Seat(0); s < NumSeats; s++ {
		for i := 0; i < HandSize; i++ {
			hands[s] = append(hands[s], deck.Pop())
		}
	}
	treasure := make([]Card, 0, TreasureSize)
	for i := 0; i < TreasureSize; i++ {
		treasure = append(treasure, deck.Pop())
	}

	for s := Seat(0); s < NumSeats; s++ {
		r.hands[s] = NewHand(hands[s])
	}
	r.treasure = treasure
	r.active = r.dealer.Next()
	r.phase = PhaseBidding
	return nil
}

// PlaceBid appends a bid (points of zero passes) for the active bidder. A
// non-pass bid must be a multiple of five and exceed the current highest
// bid, or reach the opening minimum when no bid stands. When bidding
// resolves with a contract the treasure joins the holder's hand and the
// round moves to the reveal phase; when all three pass the round is marked
// aborted and the caller decides whether to redeal.
func (r *Round) PlaceBid(seat Seat, points int) error {
	if r.phase != PhaseBidding {
		return ruleErr(InvalidPhaseTransition, "bid in phase %s", r.phase)
	}
	if r.aborted {
		return ruleErr(InvalidPhaseTransition, "bidding concluded with no contract")
	}
	if !seat.Valid() || seat != r.active {
		return ruleErr(NotActivePlayer, "seat %d bid out of turn (active %d)", seat, r.active)
	}
	if points != 0 {
		if points%BidStep != 0 {
			return ruleErr(InvalidBid, "bid %d is not a multiple of %d", points, BidStep)
		}
		minimum := OpeningBid
		if high, ok := HighestBid(r.bids); ok {
			minimum = high.Points + BidStep
		}
		if points < minimum {
			return ruleErr(InvalidBid, "bid %d below minimum %d", points, minimum)
		}
	}

	r.bids = append(r.bids, Bid{Seat: seat, Points: points})
	contract, done := ResolveBidding(r.bids)
	if !done {
		r.active = r.nextBidder(seat)
		return nil
	}
	if contract == nil {
		r.aborted = true
		return nil
	}
	r.contract = contract
	r.active = contract.Seat
	r.hands[contract.Seat] = r.hands[contract.Seat].With(r.treasure...)
	r.treasureTaken = true
	r.phase = PhaseRevealTreasure
	return nil
}

// nextBidder returns the next clockwise seat that has not passed.
func (r *Round) nextBidder(from Seat) Seat {
	s := from.Next()
	for i := 0; i < NumSeats; i++ {
		if !r.hasPassed(s) {
			return s
		}
		s = s.Next()
	}
	return from
}

func (r *Round) hasPassed(seat Seat) bool {
	for _, b := range r.bids {
		if b.Seat == seat && b.Pass() {
			return true
		}
	}
	return false
}

// RaiseContract lets the contract holder raise (never lower) the contract
// after seeing the treasure. Raises must stay in multiples of five and may
// be repeated until the contract is finalized.
func (r *Round) RaiseContract(seat Seat, points int) error {
	if r.phase != PhaseRevealTreasure {
		return ruleErr(InvalidPhaseTransition, "raise contract in phase %s", r.phase)
	}
	if seat != r.contract.Seat {
		return ruleErr(NotActivePlayer, "seat %d does not hold the contract", seat)
	}
	if points <= r.contract.Points {
		return ruleErr(InvalidBid, "raise %d does not exceed contract %d", points, r.contract.Points)
	}
	if points%BidStep != 0 {
		return ruleErr(InvalidBid, "raise %d is not a multiple of %d", points, BidStep)
	}
	r.contract = &Bid{Seat: seat, Points: points}
	return nil
}

// FinalizeContract locks the contract value and moves to distribution.
func (r *Round) FinalizeContract(seat Seat) error {
	if r.phase != PhaseRevealTreasure {
		return ruleErr(InvalidPhaseTransition, "finalize contract in phase %s", r.phase)
	}
	if seat != r.contract.Seat {
		return ruleErr(NotActivePlayer, "seat %d does not hold the contract", seat)
	}
	r.phase = PhaseDistribute
	return nil
}

// Distribute passes one card from the contract holder's ten-card hand to
// each opponent. The two cards must be distinct, present in the hand, and
// never assigned to the holder. The holder then leads the first trick.
func (r *Round) Distribute(seat Seat, gifts map[Seat]Card) error {
	if r.phase != PhaseDistribute {
		return ruleErr(InvalidPhaseTransition, "distribute in phase %s", r.phase)
	}
	if seat != r.contract.Seat {
		return ruleErr(NotActivePlayer, "seat %d does not hold the contract", seat)
	}
	if len(gifts) != NumSeats-1 {
		return ruleErr(InvalidDistribution, "distribution has %d cards, want %d", len(gifts), NumSeats-1)
	}
	hand := r.hands[seat]
	var given []Card
	for to, c := range gifts {
		if !to.Valid() || to == seat {
			return ruleErr(InvalidDistribution, "cannot assign a card to seat %d", to)
		}
		if !hand.Contains(c) {
			return ruleErr(InvalidDistribution, "card %s not in hand", c)
		}
		for _, g := range given {
			if g == c {
				return ruleErr(InvalidDistribution, "card %s assigned twice", c)
			}
		}
		given = append(given, c)
	}

	for to, c := range gifts {
		r.hands[to] = r.hands[to].With(c)
		hand = hand.Without(c)
	}
	r.hands[seat] = hand
	r.active = seat
	r.phase = PhasePlaying
	return nil
}

// LegalPlays returns the cards the seat may play right now: the full hand
// when leading, otherwise the leading suit when held, otherwise trump when
// set and held, otherwise anything.
func (r *Round) LegalPlays(seat Seat) []Card {
	if r.phase != PhasePlaying || !seat.Valid() || len(r.trick) >= TrickSize {
		return nil
	}
	hand := r.hands[seat]
	if len(r.trick) == 0 {
		return hand.Cards()
	}
	lead := r.trick[0].Card.Suit
	if hand.HasSuit(lead) {
		return hand.SuitCards(lead)
	}
	if r.trump != nil && hand.HasSuit(*r.trump) {
		return hand.SuitCards(*r.trump)
	}
	return hand.Cards()
}

// PlayCard commits the active seat's card to the current trick. Leading a
// king or queen of a held marriage declares the marriage automatically and
// makes its suit trump at once, provided the player has already won a trick
// this round. Completing the trick advances the active seat to its winner
// but keeps the trick visible until DismissTrick.
func (r *Round) PlayCard(seat Seat, card Card) error {
	if r.phase != PhasePlaying {
		return ruleErr(InvalidPhaseTransition, "play card in phase %s", r.phase)
	}
	if len(r.trick) == TrickSize {
		return ruleErr(InvalidPhaseTransition, "completed trick awaits dismissal")
	}
	if !seat.Valid() || seat != r.active {
		return ruleErr(NotActivePlayer, "seat %d played out of turn (active %d)", seat, r.active)
	}
	hand := r.hands[seat]
	if !hand.Contains(card) {
		return ruleErr(IllegalCard, "card %s not in hand", card)
	}
	if !r.legalPlay(hand, card) {
		return ruleErr(IllegalCard, "card %s violates follow-suit rules", card)
	}

	if len(r.trick) == 0 && (card.Rank == King || card.Rank == Queen) &&
		hand.HasMarriage(card.Suit) && len(r.taken[seat]) > 0 {
		s := card.Suit
		r.trump = &s
		r.marriages[seat] = append(r.marriages[seat], s)
	}

	r.trick = append(r.trick, Play{Seat: seat, Card: card})
	r.hands[seat] = hand.Without(card)
	if len(r.trick) == TrickSize {
		win, err := WinningPlay(r.trick, r.trump)
		if err != nil {
			return err
		}
		r.trickWinner = win.Seat
		r.active = win.Seat
	} else {
		r.active = seat.Next()
	}
	return nil
}

func (r *Round) legalPlay(hand Hand, card Card) bool {
	if !CanPlay(hand, r.trick, card) {
		return false
	}
	if len(r.trick) == 0 {
		return true
	}
	// Out of the leading suit and trump is set: trump must be played if held.
	lead := r.trick[0].Card.Suit
	if card.Suit != lead && r.trump != nil && card.Suit != *r.trump && hand.HasSuit(*r.trump) && !hand.HasSuit(lead) {
		return false
	}
	return true
}

// DismissTrick archives the completed trick to its winner and clears the
// table. The winner leads the next trick; once every hand is empty the
// round moves to scoring.
func (r *Round) DismissTrick() error {
	if r.phase != PhasePlaying {
		return ruleErr(InvalidPhaseTransition, "dismiss trick in phase %s", r.phase)
	}
	if len(r.trick) != TrickSize {
		return ruleErr(InvalidPhaseTransition, "no completed trick to dismiss")
	}

	var t Trick
	copy(t.Plays[:], r.trick)
	t.Winner = r.trickWinner
	r.taken[r.trickWinner] = append(r.taken[r.trickWinner], t)
	r.trick = nil
	r.trickCount++
	r.active = t.Winner

	empty := true
	for s := Seat(0); s < NumSeats; s++ {
		if r.hands[s].Len() > 0 {
			empty = false
			break
		}
	}
	if empty {
		r.phase = PhaseScoring
	}
	return nil
}

// Result settles the finished round: per-seat trick points and declared
// marriages, with the contract adjustment applied.
func (r *Round) Result() (RoundResult, error) {
	if r.phase != PhaseScoring {
		return RoundResult{}, ruleErr(InvalidPhaseTransition, "score in phase %s", r.phase)
	}
	var tallies [NumSeats]PlayerTally
	for s := Seat(0); s < NumSeats; s++ {
		points := 0
		for _, t := range r.taken[s] {
			points += t.Points()
		}
		tallies[s] = PlayerTally{
			TrickPoints: points,
			Marriages:   append([]Suit(nil), r.marriages[s]...),
		}
	}
	return SettleRound(tallies, *r.contract), nil
}
