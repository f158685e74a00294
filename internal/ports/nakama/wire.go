package nakama

import (
	"encoding/json"

	"tysyacha/internal/app"
	"tysyacha/internal/domain"
)

// MatchLabel is the JSON match label indexed by Nakama's match listing.
type MatchLabel struct {
	Game  string `json:"game"`
	Open  int    `json:"open"`
	State string `json:"state"` // "lobby" or "playing"
}

func (l MatchLabel) Encode() (string, error) {
	b, err := json.Marshal(l)
	return string(b), err
}

// Client -> server payloads. StartGame and FinalizeContract carry no body.

type PlaceBidRequest struct {
	Points int `json:"points"` // zero passes
}

type RaiseContractRequest struct {
	Points int `json:"points"`
}

type Gift struct {
	Seat domain.Seat `json:"seat"`
	Card domain.Card `json:"card"`
}

type DistributeCardsRequest struct {
	Gifts []Gift `json:"gifts"`
}

type PlayCardRequest struct {
	Card domain.Card `json:"card"`
}

// EventMessage is the server -> client envelope for app events.
type EventMessage struct {
	Kind    app.EventKind `json:"kind"`
	Payload any           `json:"payload,omitempty"`
}

// ErrorMessage is sent privately when a request is rejected.
type ErrorMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlayerInfo is one seat entry of the match state snapshot.
type PlayerInfo struct {
	UserID      string      `json:"user_id"`
	Seat        domain.Seat `json:"seat"`
	DisplayName string      `json:"display_name"`
	IsOwner     bool        `json:"is_owner"`
	IsBot       bool        `json:"is_bot"`
	Total       int         `json:"total"`
}

// MatchStateSnapshot is broadcast whenever seating changes.
type MatchStateSnapshot struct {
	Seats     []string     `json:"seats"`
	OwnerSeat int          `json:"owner_seat"`
	Tick      int64        `json:"tick"`
	State     string       `json:"state"`
	Players   []PlayerInfo `json:"players"`
}
