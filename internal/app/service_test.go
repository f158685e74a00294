package app

import (
	"math/rand"
	"testing"

	"tysyacha/internal/domain"
)

func newTestService() *Service {
	return NewService(rand.New(rand.NewSource(1)))
}

func startPlayingRound(t *testing.T, svc *Service, game *domain.Game) *domain.Round {
	t.Helper()
	round, _, err := svc.StartRound(game)
	if err != nil {
		t.Fatalf("start round: %v", err)
	}
	bidder := round.ActiveSeat()
	if _, err := svc.PlaceBid(game, round, bidder, 100); err != nil {
		t.Fatalf("bid: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.PlaceBid(game, round, round.ActiveSeat(), 0); err != nil {
			t.Fatalf("pass: %v", err)
		}
	}
	if _, err := svc.FinalizeContract(round, bidder); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	cards := round.Hand(bidder).Cards()
	gifts := map[domain.Seat]domain.Card{}
	next := bidder.Next()
	gifts[next] = cards[0]
	gifts[next.Next()] = cards[1]
	if _, err := svc.DistributeCards(round, bidder, gifts); err != nil {
		t.Fatalf("distribute: %v", err)
	}
	return round
}

func TestStartMatchRequiresThreeNames(t *testing.T) {
	svc := newTestService()
	if _, _, err := svc.StartMatch([domain.NumSeats]string{"a", "", "c"}); err == nil {
		t.Fatalf("expected error for missing player name")
	}
	game, events, err := svc.StartMatch([domain.NumSeats]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("start match: %v", err)
	}
	if game == nil || len(events) != 1 || events[0].Kind != EventMatchStarted {
		t.Fatalf("unexpected start match result: %v %v", game, events)
	}
}

func TestStartRoundDealsPrivateHands(t *testing.T) {
	svc := newTestService()
	game, _, _ := svc.StartMatch([domain.NumSeats]string{"a", "b", "c"})

	_, events, err := svc.StartRound(game)
	if err != nil {
		t.Fatalf("start round: %v", err)
	}

	dealt := 0
	for _, ev := range events {
		if ev.Kind != EventHandDealt {
			continue
		}
		dealt++
		if len(ev.Recipients) != 1 {
			t.Fatalf("hand event broadcast to %d recipients", len(ev.Recipients))
		}
		payload := ev.Payload.(HandDealtPayload)
		if len(payload.Hand) != domain.HandSize {
			t.Fatalf("dealt hand of %d cards", len(payload.Hand))
		}
	}
	if dealt != domain.NumSeats {
		t.Fatalf("hand events: got %d, want %d", dealt, domain.NumSeats)
	}
}

func TestBiddingWonRevealsTreasure(t *testing.T) {
	svc := newTestService()
	game, _, _ := svc.StartMatch([domain.NumSeats]string{"a", "b", "c"})
	round, _, err := svc.StartRound(game)
	if err != nil {
		t.Fatalf("start round: %v", err)
	}

	bidder := round.ActiveSeat()
	if _, err := svc.PlaceBid(game, round, bidder, 100); err != nil {
		t.Fatalf("bid: %v", err)
	}
	if _, err := svc.PlaceBid(game, round, round.ActiveSeat(), 0); err != nil {
		t.Fatalf("pass: %v", err)
	}
	events, err := svc.PlaceBid(game, round, round.ActiveSeat(), 0)
	if err != nil {
		t.Fatalf("final pass: %v", err)
	}

	kinds := map[EventKind]bool{}
	for _, ev := range events {
		kinds[ev.Kind] = true
	}
	for _, want := range []EventKind{EventBidPlaced, EventBiddingWon, EventTreasureRevealed} {
		if !kinds[want] {
			t.Fatalf("missing %s in %v", want, kinds)
		}
	}
	if round.Phase() != domain.PhaseRevealTreasure {
		t.Fatalf("phase: %s", round.Phase())
	}
}

func TestAllPassCountsFailedDealAndBolts(t *testing.T) {
	svc := newTestService()
	game, _, _ := svc.StartMatch([domain.NumSeats]string{"a", "b", "c"})

	for attempt := 1; attempt <= domain.FailedDealLimit; attempt++ {
		round, _, err := svc.StartRound(game)
		if err != nil {
			t.Fatalf("start round %d: %v", attempt, err)
		}
		var last []Event
		for i := 0; i < domain.NumSeats; i++ {
			last, err = svc.PlaceBid(game, round, round.ActiveSeat(), 0)
			if err != nil {
				t.Fatalf("pass: %v", err)
			}
		}
		final := last[len(last)-1]
		if attempt < domain.FailedDealLimit {
			if final.Kind != EventDealAborted {
				t.Fatalf("attempt %d: got %s, want deal_aborted", attempt, final.Kind)
			}
			if game.Dealer() != 0 {
				t.Fatalf("dealer rotated before the bolt")
			}
		} else {
			if final.Kind != EventBoltApplied {
				t.Fatalf("attempt %d: got %s, want bolt_applied", attempt, final.Kind)
			}
		}
	}

	if got := game.Totals(); got[0] != domain.BoltPenalty {
		t.Fatalf("dealer total after bolt: got %d, want %d", got[0], domain.BoltPenalty)
	}
	if game.Dealer() != 1 {
		t.Fatalf("dealer after bolt: got %d, want 1", game.Dealer())
	}
}

func TestPlayThroughRoundScores(t *testing.T) {
	svc := newTestService()
	game, _, _ := svc.StartMatch([domain.NumSeats]string{"a", "b", "c"})
	round := startPlayingRound(t, svc, game)

	var sawRoundScored bool
	for round.Phase() == domain.PhasePlaying {
		if round.TrickComplete() {
			events, err := svc.DismissTrick(game, round)
			if err != nil {
				t.Fatalf("dismiss: %v", err)
			}
			for _, ev := range events {
				if ev.Kind == EventRoundScored {
					sawRoundScored = true
					payload := ev.Payload.(RoundScoredPayload)
					if payload.Totals != game.Totals() {
						t.Fatalf("payload totals diverge from game totals")
					}
				}
			}
			continue
		}
		seat := round.ActiveSeat()
		if _, err := svc.PlayCard(round, seat, round.LegalPlays(seat)[0]); err != nil {
			t.Fatalf("play: %v", err)
		}
	}

	if !sawRoundScored {
		t.Fatalf("round completed without a round_scored event")
	}
	if len(game.History()) != 1 {
		t.Fatalf("game history: got %d rounds, want 1", len(game.History()))
	}
}

func TestSaveAndLoadRound(t *testing.T) {
	svc := newTestService()
	game, _, _ := svc.StartMatch([domain.NumSeats]string{"a", "b", "c"})
	round := startPlayingRound(t, svc, game)

	data, err := svc.SaveRound(round)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	restored, err := svc.LoadRound(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if restored.Phase() != round.Phase() {
		t.Fatalf("restored phase %s, want %s", restored.Phase(), round.Phase())
	}

	seat := restored.ActiveSeat()
	card := restored.LegalPlays(seat)[0]
	if _, err := svc.PlayCard(restored, seat, card); err != nil {
		t.Fatalf("play on restored round: %v", err)
	}
}

func TestErrorsLeaveStateUntouched(t *testing.T) {
	svc := newTestService()
	game, _, _ := svc.StartMatch([domain.NumSeats]string{"a", "b", "c"})
	round := startPlayingRound(t, svc, game)

	before, err := svc.SaveRound(round)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	wrongSeat := round.ActiveSeat().Next()
	if _, err := svc.PlayCard(round, wrongSeat, round.Hand(wrongSeat).Cards()[0]); !domain.IsKind(err, domain.NotActivePlayer) {
		t.Fatalf("out-of-turn play: got %v", err)
	}
	after, err := svc.SaveRound(round)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("rejected action changed serialized state")
	}
}
