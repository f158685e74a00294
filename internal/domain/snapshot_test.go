package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

// advanceToPlaying drives a fresh round to the start of play.
func advanceToPlaying(t *testing.T, seed int64) *Round {
	t.Helper()
	r := NewRound(0, seed)
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
	if err := r.Distribute(1, map[Seat]Card{0: cards[0], 2: cards[1]}); err != nil {
		t.Fatalf("distribute: %v", err)
	}
	return r
}

func TestSnapshotRoundTrip(t *testing.T) {
	r := advanceToPlaying(t, 21)

	// A couple of plays so the snapshot carries a partial trick.
	for i := 0; i < 2; i++ {
		seat := r.ActiveSeat()
		if err := r.PlayCard(seat, r.LegalPlays(seat)[0]); err != nil {
			t.Fatalf("play: %v", err)
		}
	}

	snap := r.Snapshot()
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded RoundSnapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored, err := RestoreRound(decoded)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !reflect.DeepEqual(snap, restored.Snapshot()) {
		t.Fatalf("restored snapshot differs from original")
	}
}

func TestRestoredRoundBehavesIdentically(t *testing.T) {
	original := advanceToPlaying(t, 33)
	restored, err := RestoreRound(original.Snapshot())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	// Drive both rounds with the same deterministic policy; every
	// intermediate snapshot must agree.
	for original.Phase() == PhasePlaying {
		if !reflect.DeepEqual(original.Snapshot(), restored.Snapshot()) {
			t.Fatalf("states diverged mid-round")
		}
		if original.TrickComplete() {
			if err := original.DismissTrick(); err != nil {
				t.Fatalf("dismiss original: %v", err)
			}
			if err := restored.DismissTrick(); err != nil {
				t.Fatalf("dismiss restored: %v", err)
			}
			continue
		}
		seat := original.ActiveSeat()
		card := original.LegalPlays(seat)[0]
		if err := original.PlayCard(seat, card); err != nil {
			t.Fatalf("play original: %v", err)
		}
		if err := restored.PlayCard(seat, card); err != nil {
			t.Fatalf("play restored: %v", err)
		}
	}

	origRes, err := original.Result()
	if err != nil {
		t.Fatalf("result original: %v", err)
	}
	restRes, err := restored.Result()
	if err != nil {
		t.Fatalf("result restored: %v", err)
	}
	if !reflect.DeepEqual(origRes, restRes) {
		t.Fatalf("results differ: %+v vs %+v", origRes, restRes)
	}
}

func TestRestoreRejectsCorruptSnapshots(t *testing.T) {
	base := advanceToPlaying(t, 55).Snapshot()

	t.Run("unknown phase", func(t *testing.T) {
		snap := base
		snap.Phase = "limbo"
		if _, err := RestoreRound(snap); err == nil {
			t.Fatalf("expected error for unknown phase")
		}
	})

	t.Run("duplicate card", func(t *testing.T) {
		snap := base
		hands := snap.Hands
		hands[0] = append([]Card(nil), snap.Hands[0]...)
		hands[0][0] = hands[0][1]
		snap.Hands = hands
		if _, err := RestoreRound(snap); err == nil {
			t.Fatalf("expected error for duplicate card")
		}
	})

	t.Run("missing card", func(t *testing.T) {
		snap := base
		hands := snap.Hands
		hands[0] = append([]Card(nil), snap.Hands[0][:len(snap.Hands[0])-1]...)
		snap.Hands = hands
		if _, err := RestoreRound(snap); err == nil {
			t.Fatalf("expected error for missing card")
		}
	})

	t.Run("invalid dealer", func(t *testing.T) {
		snap := base
		snap.Dealer = 7
		if _, err := RestoreRound(snap); err == nil {
			t.Fatalf("expected error for invalid dealer")
		}
	})

	t.Run("invalid active seat", func(t *testing.T) {
		snap := base
		snap.Active = -1
		if _, err := RestoreRound(snap); err == nil {
			t.Fatalf("expected error for invalid active seat")
		}
	})

	t.Run("missing contract past the auction", func(t *testing.T) {
		for _, phase := range []Phase{PhaseRevealTreasure, PhaseDistribute, PhasePlaying, PhaseScoring} {
			snap := base
			snap.Phase = phase
			snap.Contract = nil
			if _, err := RestoreRound(snap); err == nil {
				t.Fatalf("expected error for contract-less %q snapshot", phase)
			}
		}
	})

	t.Run("invalid contract seat", func(t *testing.T) {
		snap := base
		snap.Contract = &Bid{Seat: 5, Points: 100}
		if _, err := RestoreRound(snap); err == nil {
			t.Fatalf("expected error for invalid contract seat")
		}
	})

	t.Run("invalid contract points", func(t *testing.T) {
		for _, points := range []int{0, 95, 102} {
			snap := base
			snap.Contract = &Bid{Seat: 1, Points: points}
			if _, err := RestoreRound(snap); err == nil {
				t.Fatalf("expected error for contract of %d", points)
			}
		}
	})
}
