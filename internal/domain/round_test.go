package domain

import (
	"reflect"
	"testing"
)

// fullPack returns all 24 cards in a fixed order.
func fullPack() []Card {
	cards := make([]Card, 0, DeckSize)
	for s := Spades; s <= Hearts; s++ {
		for r := Nine; r <= Ace; r++ {
			cards = append(cards, Card{Suit: s, Rank: r})
		}
	}
	return cards
}

// checkUnion asserts that hands, treasure (until taken), archived tricks and
// the in-progress trick together cover the pack exactly once.
func checkUnion(t *testing.T, r *Round) {
	t.Helper()
	if err := checkDeckUnion(r.Snapshot()); err != nil {
		t.Fatalf("deck union violated in phase %s: %v", r.Phase(), err)
	}
}

// playingRound builds a round mid-play via snapshot restore.
func playingRound(t *testing.T, snap RoundSnapshot) *Round {
	t.Helper()
	r, err := RestoreRound(snap)
	if err != nil {
		t.Fatalf("restore crafted round: %v", err)
	}
	return r
}

func TestRoundFullFlow(t *testing.T) {
	r := NewRound(0, 42)

	if err := r.Deal(); err != nil {
		t.Fatalf("deal: %v", err)
	}
	if r.Phase() != PhaseBidding {
		t.Fatalf("phase after deal: %s", r.Phase())
	}
	for s := Seat(0); s < NumSeats; s++ {
		if got := r.Hand(s).Len(); got != HandSize {
			t.Fatalf("seat %d dealt %d cards, want %d", s, got, HandSize)
		}
	}
	if len(r.Treasure()) != TreasureSize {
		t.Fatalf("treasure has %d cards, want %d", len(r.Treasure()), TreasureSize)
	}
	checkUnion(t, r)

	// Dealer is seat 0, so seat 1 opens the bidding.
	if r.ActiveSeat() != 1 {
		t.Fatalf("first bidder: got %d, want 1", r.ActiveSeat())
	}
	if err := r.PlaceBid(1, 100); err != nil {
		t.Fatalf("bid: %v", err)
	}
	if err := r.PlaceBid(2, 0); err != nil {
		t.Fatalf("pass: %v", err)
	}
	if err := r.PlaceBid(0, 0); err != nil {
		t.Fatalf("pass: %v", err)
	}

	if r.Phase() != PhaseRevealTreasure {
		t.Fatalf("phase after bidding: %s", r.Phase())
	}
	contract := r.Contract()
	if contract == nil || contract.Seat != 1 || contract.Points != 100 {
		t.Fatalf("contract: got %+v, want seat 1 at 100", contract)
	}
	if got := r.Hand(1).Len(); got != HandSize+TreasureSize {
		t.Fatalf("holder hand after treasure: %d cards, want %d", got, HandSize+TreasureSize)
	}
	checkUnion(t, r)

	if err := r.RaiseContract(1, 110); err != nil {
		t.Fatalf("raise: %v", err)
	}
	if err := r.RaiseContract(1, 120); err != nil {
		t.Fatalf("second raise: %v", err)
	}
	if err := r.FinalizeContract(1); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	holderCards := r.Hand(1).Cards()
	gifts := map[Seat]Card{0: holderCards[0], 2: holderCards[1]}
	if err := r.Distribute(1, gifts); err != nil {
		t.Fatalf("distribute: %v", err)
	}
	for s := Seat(0); s < NumSeats; s++ {
		if got := r.Hand(s).Len(); got != TricksPerRound {
			t.Fatalf("seat %d holds %d cards at start of play, want %d", s, got, TricksPerRound)
		}
	}
	if r.ActiveSeat() != 1 {
		t.Fatalf("contract holder must lead, active is %d", r.ActiveSeat())
	}
	checkUnion(t, r)

	// Drive play to completion with the first legal card each turn.
	for r.Phase() == PhasePlaying {
		if r.TrickComplete() {
			if err := r.DismissTrick(); err != nil {
				t.Fatalf("dismiss: %v", err)
			}
			checkUnion(t, r)
			continue
		}
		seat := r.ActiveSeat()
		legal := r.LegalPlays(seat)
		if len(legal) == 0 {
			t.Fatalf("seat %d has no legal plays in phase %s", seat, r.Phase())
		}
		if err := r.PlayCard(seat, legal[0]); err != nil {
			t.Fatalf("seat %d playing %s: %v", seat, legal[0], err)
		}
		checkUnion(t, r)
	}

	if r.Phase() != PhaseScoring {
		t.Fatalf("phase after play: %s", r.Phase())
	}
	if r.TrickCount() != TricksPerRound {
		t.Fatalf("trick count: got %d, want %d", r.TrickCount(), TricksPerRound)
	}

	res, err := r.Result()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if res.Scores[1] != 120 && res.Scores[1] != -120 {
		t.Fatalf("contract holder score: got %d, want exactly +/-120", res.Scores[1])
	}
	for _, s := range []Seat{0, 2} {
		if res.Scores[s] < 0 {
			t.Fatalf("non-contract seat %d scored %d", s, res.Scores[s])
		}
	}
}

func TestRoundAllPassAborts(t *testing.T) {
	r := NewRound(2, 7)
	if err := r.Deal(); err != nil {
		t.Fatalf("deal: %v", err)
	}
	// Dealer 2, so bidding starts at seat 0.
	for _, s := range []Seat{0, 1, 2} {
		if err := r.PlaceBid(s, 0); err != nil {
			t.Fatalf("pass: %v", err)
		}
	}
	if !r.Aborted() {
		t.Fatalf("round not marked aborted after all passes")
	}
	if r.Phase() != PhaseBidding {
		t.Fatalf("aborted round transitioned to %s", r.Phase())
	}
	if err := r.PlaceBid(0, 100); !IsKind(err, InvalidPhaseTransition) {
		t.Fatalf("bid after abort: got %v, want InvalidPhaseTransition", err)
	}
}

func TestRoundBidValidation(t *testing.T) {
	r := NewRound(0, 11)
	if err := r.Deal(); err != nil {
		t.Fatalf("deal: %v", err)
	}

	tests := []struct {
		name string
		seat Seat
		bid  int
		kind ErrorKind
	}{
		{"out of turn", 2, 100, NotActivePlayer},
		{"below opening minimum", 1, 95, InvalidBid},
		{"not a multiple of five", 1, 101, InvalidBid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := r.Snapshot()
			err := r.PlaceBid(tt.seat, tt.bid)
			if !IsKind(err, tt.kind) {
				t.Fatalf("got %v, want %s", err, tt.kind)
			}
			if !reflect.DeepEqual(before, r.Snapshot()) {
				t.Fatalf("state changed by rejected bid")
			}
		})
	}

	if err := r.PlaceBid(1, 100); err != nil {
		t.Fatalf("opening bid: %v", err)
	}
	if err := r.PlaceBid(2, 100); !IsKind(err, InvalidBid) {
		t.Fatalf("non-increasing bid: got %v, want InvalidBid", err)
	}
	if err := r.PlaceBid(2, 105); err != nil {
		t.Fatalf("raise by step: %v", err)
	}
}

func TestRoundDealTwice(t *testing.T) {
	r := NewRound(0, 5)
	if err := r.Deal(); err != nil {
		t.Fatalf("deal: %v", err)
	}
	if err := r.Deal(); !IsKind(err, InvalidPhaseTransition) {
		t.Fatalf("second deal: got %v, want InvalidPhaseTransition", err)
	}
}

func TestRoundRaiseRules(t *testing.T) {
	r := NewRound(0, 13)
	if err := r.Deal(); err != nil {
		t.Fatalf("deal: %v", err)
	}
	for _, b := range []Bid{{1, 100}, {2, 0}, {0, 0}} {
		if err := r.PlaceBid(b.Seat, b.Points); err != nil {
			t.Fatalf("bid %+v: %v", b, err)
		}
	}

	if err := r.RaiseContract(0, 120); !IsKind(err, NotActivePlayer) {
		t.Fatalf("raise by non-holder: got %v, want NotActivePlayer", err)
	}
	if err := r.RaiseContract(1, 100); !IsKind(err, InvalidBid) {
		t.Fatalf("non-raising raise: got %v, want InvalidBid", err)
	}
	if err := r.RaiseContract(1, 112); !IsKind(err, InvalidBid) {
		t.Fatalf("mis-stepped raise: got %v, want InvalidBid", err)
	}
	if err := r.RaiseContract(1, 105); err != nil {
		t.Fatalf("valid raise: %v", err)
	}
	if got := r.Contract().Points; got != 105 {
		t.Fatalf("contract after raise: got %d, want 105", got)
	}
}

func TestRoundDistributionValidation(t *testing.T) {
	r := NewRound(0, 17)
	if err := r.Deal(); err != nil {
		t.Fatalf("deal: %v", err)
	}
	for _, b := range []Bid{{1, 100}, {2, 0}, {0, 0}} {
		if err := r.PlaceBid(b.Seat, b.Points); err != nil {
			t.Fatalf("bid %+v: %v", b, err)
		}
	}
	if err := r.FinalizeContract(1); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	cards := r.Hand(1).Cards()
	notHeld := Card{}
	for _, c := range fullPack() {
		if !r.Hand(1).Contains(c) {
			notHeld = c
			break
		}
	}

	tests := []struct {
		name  string
		seat  Seat
		gifts map[Seat]Card
		kind  ErrorKind
	}{
		{"wrong seat", 0, map[Seat]Card{1: cards[0], 2: cards[1]}, NotActivePlayer},
		{"too few cards", 1, map[Seat]Card{0: cards[0]}, InvalidDistribution},
		{"self assignment", 1, map[Seat]Card{0: cards[0], 1: cards[1]}, InvalidDistribution},
		{"card not held", 1, map[Seat]Card{0: notHeld, 2: cards[1]}, InvalidDistribution},
		{"same card twice", 1, map[Seat]Card{0: cards[0], 2: cards[0]}, InvalidDistribution},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := r.Snapshot()
			err := r.Distribute(tt.seat, tt.gifts)
			if !IsKind(err, tt.kind) {
				t.Fatalf("got %v, want %s", err, tt.kind)
			}
			if !reflect.DeepEqual(before, r.Snapshot()) {
				t.Fatalf("state changed by rejected distribution")
			}
		})
	}

	if err := r.Distribute(1, map[Seat]Card{0: cards[0], 2: cards[1]}); err != nil {
		t.Fatalf("valid distribution: %v", err)
	}
	if got := r.Hand(1).Len(); got != TricksPerRound {
		t.Fatalf("holder keeps %d cards, want %d", got, TricksPerRound)
	}
}

// craftedPlayingSnapshot deals the full pack into three fixed 8-card hands
// with seat 0 holding the hearts marriage, contract at seat 0, play just
// starting.
func craftedPlayingSnapshot() RoundSnapshot {
	pack := fullPack()
	contract := Bid{Seat: 0, Points: 100}
	snap := RoundSnapshot{
		Phase:         PhasePlaying,
		Dealer:        2,
		Seed:          1,
		TreasureTaken: true,
		Bids:          []Bid{{0, 100}, {1, 0}, {2, 0}},
		Contract:      &contract,
		Active:        0,
	}
	// Hearts run from index 18; give seat 0 all six hearts plus two spades.
	snap.Hands[0] = append(append([]Card(nil), pack[18:24]...), pack[0], pack[1])
	snap.Hands[1] = append([]Card(nil), pack[2:10]...)
	snap.Hands[2] = append([]Card(nil), pack[10:18]...)
	snap.Treasure = []Card{pack[18], pack[19], pack[20]}
	return snap
}

func TestMarriageNotDeclarableOnFirstLead(t *testing.T) {
	r := playingRound(t, craftedPlayingSnapshot())

	// Seat 0 holds the hearts marriage but has won no trick yet.
	if err := r.PlayCard(0, Card{Hearts, King}); err != nil {
		t.Fatalf("lead: %v", err)
	}
	if r.Trump() != nil {
		t.Fatalf("marriage declared on the opening lead")
	}
	if len(r.Marriages(0)) != 0 {
		t.Fatalf("marriage recorded on the opening lead")
	}
}

func TestMarriageDeclaredAfterWonTrick(t *testing.T) {
	snap := craftedPlayingSnapshot()
	// Move one trick's worth of cards from the hands into seat 0's taken
	// pile so the marriage precondition holds.
	trick := Trick{
		Plays: [TrickSize]Play{
			{0, snap.Hands[0][7]},
			{1, snap.Hands[1][7]},
			{2, snap.Hands[2][7]},
		},
		Winner: 0,
	}
	snap.Hands[0] = snap.Hands[0][:7]
	snap.Hands[1] = snap.Hands[1][:7]
	snap.Hands[2] = snap.Hands[2][:7]
	snap.Taken[0] = []Trick{trick}
	snap.TrickCount = 1

	r := playingRound(t, snap)
	if err := r.PlayCard(0, Card{Hearts, King}); err != nil {
		t.Fatalf("lead: %v", err)
	}
	trump := r.Trump()
	if trump == nil || *trump != Hearts {
		t.Fatalf("trump after marriage lead: got %v, want hearts", trump)
	}
	got := r.Marriages(0)
	if len(got) != 1 || got[0] != Hearts {
		t.Fatalf("declared marriages: got %v, want [hearts]", got)
	}
}

func TestMarriageOverridesPreviousTrump(t *testing.T) {
	snap := craftedPlayingSnapshot()
	trick := Trick{
		Plays: [TrickSize]Play{
			{0, snap.Hands[0][7]},
			{1, snap.Hands[1][7]},
			{2, snap.Hands[2][7]},
		},
		Winner: 0,
	}
	snap.Hands[0] = snap.Hands[0][:7]
	snap.Hands[1] = snap.Hands[1][:7]
	snap.Hands[2] = snap.Hands[2][:7]
	snap.Taken[0] = []Trick{trick}
	snap.TrickCount = 1
	clubs := Clubs
	snap.Trump = &clubs

	r := playingRound(t, snap)
	if err := r.PlayCard(0, Card{Hearts, Queen}); err != nil {
		t.Fatalf("lead: %v", err)
	}
	trump := r.Trump()
	if trump == nil || *trump != Hearts {
		t.Fatalf("trump after new marriage: got %v, want hearts", trump)
	}
}

func TestPlayValidation(t *testing.T) {
	r := playingRound(t, craftedPlayingSnapshot())

	before := r.Snapshot()
	if err := r.PlayCard(1, Card{Spades, Queen}); !IsKind(err, NotActivePlayer) {
		t.Fatalf("out-of-turn play: got %v, want NotActivePlayer", err)
	}
	if err := r.PlayCard(0, Card{Clubs, Ace}); !IsKind(err, IllegalCard) {
		t.Fatalf("playing a card not in hand: got %v, want IllegalCard", err)
	}
	if !reflect.DeepEqual(before, r.Snapshot()) {
		t.Fatalf("state changed by rejected play")
	}

	// Seat 0 leads spades; seat 1 holds spades and must follow.
	if err := r.PlayCard(0, Card{Spades, Nine}); err != nil {
		t.Fatalf("lead: %v", err)
	}
	if err := r.PlayCard(1, Card{Clubs, Nine}); !IsKind(err, IllegalCard) {
		t.Fatalf("refusing to follow suit: got %v, want IllegalCard", err)
	}
	if err := r.PlayCard(1, Card{Spades, Queen}); err != nil {
		t.Fatalf("following suit: %v", err)
	}
}

func TestTrumpForcedWhenOutOfLeadingSuit(t *testing.T) {
	pack := fullPack()
	contract := Bid{Seat: 0, Points: 100}
	hearts := Hearts
	snap := RoundSnapshot{
		Phase:         PhasePlaying,
		Dealer:        2,
		Seed:          1,
		TreasureTaken: true,
		Bids:          []Bid{{0, 100}, {1, 0}, {2, 0}},
		Contract:      &contract,
		Active:        0,
		Trump:         &hearts,
	}
	// Seat 1 has no spades: clubs and two hearts only.
	snap.Hands[0] = append([]Card(nil), pack[0:6]...)   // spades 9..A
	snap.Hands[1] = append(append([]Card(nil), pack[6:12]...), pack[18], pack[19]) // clubs + 2 hearts
	snap.Hands[2] = append(append([]Card(nil), pack[12:18]...), pack[20], pack[21]) // diamonds + 2 hearts
	snap.Treasure = []Card{pack[22], pack[23], pack[0]}
	// Remaining hearts 22,23 sit in the treasure record (taken), so the
	// union check needs them somewhere real: put them in seat 0's hand.
	snap.Hands[0] = append(snap.Hands[0], pack[22], pack[23])

	r := playingRound(t, snap)
	if err := r.PlayCard(0, Card{Spades, Nine}); err != nil {
		t.Fatalf("lead: %v", err)
	}

	legal := r.LegalPlays(1)
	for _, c := range legal {
		if c.Suit != Hearts {
			t.Fatalf("legal plays for trump-forced seat include %s", c)
		}
	}
	if err := r.PlayCard(1, Card{Clubs, Nine}); !IsKind(err, IllegalCard) {
		t.Fatalf("dodging trump: got %v, want IllegalCard", err)
	}
	if err := r.PlayCard(1, Card{Hearts, Nine}); err != nil {
		t.Fatalf("forced trump play: %v", err)
	}
}

func TestDismissTrickFlow(t *testing.T) {
	r := playingRound(t, craftedPlayingSnapshot())

	if err := r.DismissTrick(); !IsKind(err, InvalidPhaseTransition) {
		t.Fatalf("dismiss with no completed trick: got %v, want InvalidPhaseTransition", err)
	}

	// Seat 0 leads a spade, the others follow with whatever is legal.
	if err := r.PlayCard(0, Card{Spades, Nine}); err != nil {
		t.Fatalf("lead: %v", err)
	}
	for len(r.CurrentTrick()) < TrickSize {
		seat := r.ActiveSeat()
		if err := r.PlayCard(seat, r.LegalPlays(seat)[0]); err != nil {
			t.Fatalf("follow: %v", err)
		}
	}

	winner := r.TrickWinner()
	if err := r.PlayCard(r.ActiveSeat(), Card{Spades, Jack}); !IsKind(err, InvalidPhaseTransition) {
		t.Fatalf("play onto a completed trick: got %v, want InvalidPhaseTransition", err)
	}
	if err := r.DismissTrick(); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if got := len(r.TricksTaken(winner)); got != 1 {
		t.Fatalf("winner archived %d tricks, want 1", got)
	}
	if r.ActiveSeat() != winner {
		t.Fatalf("active seat after dismissal: got %d, want winner %d", r.ActiveSeat(), winner)
	}
	if r.TrickCount() != 1 {
		t.Fatalf("trick count: got %d, want 1", r.TrickCount())
	}
}
