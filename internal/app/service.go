package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"tysyacha/internal/domain"
)

var (
	ErrGameFinished = errors.New("game already finished")
	ErrNoContract   = errors.New("round has no contract")
)

// Service contains the Tysyacha use-cases operating on domain state. It owns
// the random source used to seed each round's shuffle; everything else is
// deterministic given the round state.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default. Tests inject a fixed-seed rng for reproducible deals.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// StartMatch creates a session for three seated players.
func (s *Service) StartMatch(players [domain.NumSeats]string) (*domain.Game, []Event, error) {
	for seat, name := range players {
		if name == "" {
			return nil, nil, fmt.Errorf("seat %d has no player", seat)
		}
	}
	game := domain.NewGame(players)
	events := []Event{{
		Kind:    EventMatchStarted,
		Payload: MatchStartedPayload{Players: players, Dealer: game.Dealer()},
	}}
	return game, events, nil
}

// StartRound deals the next round with a fresh seed. Each hand is delivered
// privately to its seat.
func (s *Service) StartRound(game *domain.Game) (*domain.Round, []Event, error) {
	if game.Finished() {
		return nil, nil, ErrGameFinished
	}
	round := game.StartRound(s.rng.Int63())
	if err := round.Deal(); err != nil {
		return nil, nil, err
	}

	events := []Event{{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			RoundNumber: game.RoundNumber(),
			Dealer:      round.Dealer(),
			FirstBidder: round.ActiveSeat(),
		},
	}}
	for seat := domain.Seat(0); seat < domain.NumSeats; seat++ {
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{Seat: seat, Hand: round.Hand(seat).Cards()},
			Recipients: []domain.Seat{seat},
		})
	}
	return round, events, nil
}

// PlaceBid submits a bid (zero passes) and reports the outcome. Winning the
// auction reveals the treasure to everyone and hands it to the winner.
func (s *Service) PlaceBid(game *domain.Game, round *domain.Round, seat domain.Seat, points int) ([]Event, error) {
	if err := round.PlaceBid(seat, points); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind:    EventBidPlaced,
		Payload: BidPlacedPayload{Seat: seat, Points: points, NextBidder: round.ActiveSeat()},
	}}

	if round.Aborted() {
		return append(events, s.abortRound(game)...), nil
	}
	if contract := round.Contract(); contract != nil {
		events = append(events,
			Event{
				Kind:    EventBiddingWon,
				Payload: BiddingWonPayload{Seat: contract.Seat, Points: contract.Points},
			},
			Event{
				Kind:    EventTreasureRevealed,
				Payload: TreasureRevealedPayload{Holder: contract.Seat, Cards: round.Treasure()},
			},
			Event{
				Kind:       EventHandDealt,
				Payload:    HandDealtPayload{Seat: contract.Seat, Hand: round.Hand(contract.Seat).Cards()},
				Recipients: []domain.Seat{contract.Seat},
			},
		)
	}
	return events, nil
}

// abortRound books an all-pass deal against the dealer, firing the bolt on
// the third consecutive failure.
func (s *Service) abortRound(game *domain.Game) []Event {
	dealer := game.Dealer()
	if bolt := game.RecordFailedDeal(); bolt {
		return []Event{{
			Kind:    EventBoltApplied,
			Payload: BoltAppliedPayload{Dealer: dealer, Penalty: domain.BoltPenalty, Totals: game.Totals()},
		}}
	}
	return []Event{{
		Kind:    EventDealAborted,
		Payload: DealAbortedPayload{Dealer: dealer, FailedDeals: game.FailedDeals()},
	}}
}

// RaiseContract raises the contract during the reveal phase.
func (s *Service) RaiseContract(round *domain.Round, seat domain.Seat, points int) ([]Event, error) {
	if err := round.RaiseContract(seat, points); err != nil {
		return nil, err
	}
	return []Event{{
		Kind:    EventContractRaised,
		Payload: ContractRaisedPayload{Seat: seat, Points: points},
	}}, nil
}

// FinalizeContract locks the contract and opens distribution.
func (s *Service) FinalizeContract(round *domain.Round, seat domain.Seat) ([]Event, error) {
	if err := round.FinalizeContract(seat); err != nil {
		return nil, err
	}
	contract := round.Contract()
	if contract == nil {
		return nil, ErrNoContract
	}
	return []Event{{
		Kind:    EventContractFinalized,
		Payload: ContractFinalizedPayload{Seat: contract.Seat, Points: contract.Points},
	}}, nil
}

// DistributeCards passes one card to each opponent. Recipients learn their
// card privately; the table only learns that distribution happened.
func (s *Service) DistributeCards(round *domain.Round, seat domain.Seat, gifts map[domain.Seat]domain.Card) ([]Event, error) {
	if err := round.Distribute(seat, gifts); err != nil {
		return nil, err
	}
	events := []Event{{
		Kind:    EventCardsDistributed,
		Payload: CardsDistributedPayload{From: seat, Leader: round.ActiveSeat()},
	}}
	for to, card := range gifts {
		events = append(events, Event{
			Kind:       EventCardReceived,
			Payload:    CardReceivedPayload{From: seat, Card: card},
			Recipients: []domain.Seat{to},
		})
	}
	return events, nil
}

// PlayCard commits the active seat's card, reporting any implicit marriage
// declaration and trick completion.
func (s *Service) PlayCard(round *domain.Round, seat domain.Seat, card domain.Card) ([]Event, error) {
	marriagesBefore := len(round.Marriages(seat))
	if err := round.PlayCard(seat, card); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind:    EventCardPlayed,
		Payload: CardPlayedPayload{Seat: seat, Card: card, NextSeat: round.ActiveSeat()},
	}}
	if declared := round.Marriages(seat); len(declared) > marriagesBefore {
		suit := declared[len(declared)-1]
		events = append(events, Event{
			Kind:    EventMarriageDeclared,
			Payload: MarriageDeclaredPayload{Seat: seat, Suit: suit, Value: suit.MarriageValue()},
		})
	}
	if round.TrickComplete() {
		events = append(events, Event{
			Kind:    EventTrickCompleted,
			Payload: TrickCompletedPayload{Winner: round.TrickWinner(), Plays: round.CurrentTrick()},
		})
	}
	return events, nil
}

// DismissTrick archives the completed trick. When it was the last one the
// round is scored and applied to the session, possibly ending the game.
func (s *Service) DismissTrick(game *domain.Game, round *domain.Round) ([]Event, error) {
	winner := round.TrickWinner()
	if err := round.DismissTrick(); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind:    EventTrickDismissed,
		Payload: TrickDismissedPayload{Winner: winner, TrickCount: round.TrickCount()},
	}}
	if round.Phase() != domain.PhaseScoring {
		return events, nil
	}

	res, err := round.Result()
	if err != nil {
		return nil, err
	}
	game.ApplyResult(res)
	events = append(events, Event{
		Kind: EventRoundScored,
		Payload: RoundScoredPayload{
			Scores:       res.Scores,
			Totals:       game.Totals(),
			Contract:     res.Contract,
			ContractMade: res.ContractMade,
		},
	})
	if game.Finished() {
		events = append(events, Event{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{Winners: game.Winners(), Totals: game.Totals()},
		})
	}
	return events, nil
}

// SaveRound serializes a round for host persistence.
func (s *Service) SaveRound(round *domain.Round) ([]byte, error) {
	return json.Marshal(round.Snapshot())
}

// LoadRound reconstructs a round from its serialized form.
func (s *Service) LoadRound(data []byte) (*domain.Round, error) {
	var snap domain.RoundSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode round snapshot: %w", err)
	}
	return domain.RestoreRound(snap)
}
