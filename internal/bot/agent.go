package bot

import (
	"tysyacha/internal/domain"
)

// Agent represents an autonomous bot player occupying a seat.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Act inspects the round and returns the action the agent wants to take at
// its seat. ActionNone means the agent has nothing to do right now, either
// because another seat is due or the phase needs no bot input.
func (a *Agent) Act(round *domain.Round, seat domain.Seat) Action {
	if round.ActiveSeat() != seat {
		return Action{Kind: ActionNone}
	}

	switch round.Phase() {
	case domain.PhaseBidding:
		if round.Aborted() {
			return Action{Kind: ActionNone}
		}
		return Action{Kind: ActionBid, Points: a.Strategy.Bid(round, seat)}
	case domain.PhaseRevealTreasure:
		if points := a.Strategy.Raise(round, seat); points > 0 {
			return Action{Kind: ActionRaise, Points: points}
		}
		return Action{Kind: ActionFinalize}
	case domain.PhaseDistribute:
		return Action{Kind: ActionDistribute, Gifts: a.Strategy.Gifts(round, seat)}
	case domain.PhasePlaying:
		if round.TrickComplete() {
			return Action{Kind: ActionNone}
		}
		return Action{Kind: ActionPlay, Card: a.Strategy.Play(round, seat)}
	}
	return Action{Kind: ActionNone}
}
