package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a rule violation reported by the engine.
type ErrorKind string

const (
	// InvalidPhaseTransition means the operation is not valid in the
	// round's current phase.
	InvalidPhaseTransition ErrorKind = "invalid_phase_transition"
	// NotActivePlayer means a player acted out of turn.
	NotActivePlayer ErrorKind = "not_active_player"
	// IllegalCard means the card is not in hand or violates the
	// follow-suit / trump-forcing rules.
	IllegalCard ErrorKind = "illegal_card"
	// InvalidBid means a bid was non-increasing, mis-stepped, or below the
	// opening minimum.
	InvalidBid ErrorKind = "invalid_bid"
	// MalformedTrick means a trick was evaluated with other than three plays.
	MalformedTrick ErrorKind = "malformed_trick"
	// InvalidDistribution means the treasure distribution was not exactly
	// two distinct cards, one to each opponent.
	InvalidDistribution ErrorKind = "invalid_distribution"
)

// RuleError is a caller-recoverable rule violation. Whenever one is
// returned, the round state is unchanged and remains authoritative.
type RuleError struct {
	Kind   ErrorKind
	Reason string
}

func (e *RuleError) Error() string {
	return string(e.Kind) + ": " + e.Reason
}

func ruleErr(kind ErrorKind, format string, args ...any) *RuleError {
	return &RuleError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a RuleError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var re *RuleError
	return errors.As(err, &re) && re.Kind == kind
}
