package wsserver

import (
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tysyacha/internal/app"
	"tysyacha/internal/bot"
	"tysyacha/internal/domain"
)

// Member is a seated connection the room can push messages to.
type Member interface {
	ID() uuid.UUID
	Name() string
	Send(msg []byte)
	Close()
}

// request couples an inbound message with the member that sent it.
type request struct {
	member Member
	data   []byte
}

// clientMessage is the single request envelope clients send.
type clientMessage struct {
	Op     string       `json:"op"` // start, bid, raise, finalize, distribute, play
	Points int          `json:"points,omitempty"`
	Gifts  []giftEntry  `json:"gifts,omitempty"`
	Card   *domain.Card `json:"card,omitempty"`
}

type giftEntry struct {
	Seat domain.Seat `json:"seat"`
	Card domain.Card `json:"card"`
}

// serverMessage is the envelope for everything the room pushes out.
type serverMessage struct {
	Type    string        `json:"type"` // "room", "event" or "error"
	Kind    app.EventKind `json:"kind,omitempty"`
	Payload any           `json:"payload,omitempty"`
	Message string        `json:"message,omitempty"`
}

type roomInfo struct {
	RoomID uint32                  `json:"room_id"`
	Name   string                  `json:"name"`
	Seats  [domain.NumSeats]string `json:"seats"`
	Bots   [domain.NumSeats]bool   `json:"bots"`
}

// Room is a single Tysyacha table. All game state is owned by the room's
// processing goroutine; members talk to it exclusively through channels.
// Unlike the Nakama handler there is no tick loop, so bots act synchronously
// whenever the turn reaches them.
type Room struct {
	ID   uint32
	Name string

	log   *zap.SugaredLogger
	svc   *app.Service
	game  *domain.Game
	round *domain.Round
	seats [domain.NumSeats]Member
	bots  [domain.NumSeats]*bot.Agent

	register   chan Member
	unregister chan Member
	requests   chan request
}

func newRoom(id uint32, name string, svc *app.Service, log *zap.SugaredLogger) *Room {
	return &Room{
		ID:         id,
		Name:       name,
		log:        log,
		svc:        svc,
		register:   make(chan Member),
		unregister: make(chan Member),
		requests:   make(chan request, 100),
	}
}

// run processes room traffic until the last human leaves.
func (r *Room) run() {
	for {
		select {
		case m := <-r.register:
			r.addMember(m)
		case m := <-r.unregister:
			if r.dropMember(m) {
				return
			}
		case req := <-r.requests:
			r.handleRequest(req.member, req.data)
		}
	}
}

func (r *Room) addMember(m Member) {
	if r.game != nil {
		r.sendTo(m, serverMessage{Type: "error", Message: "game already running"})
		m.Close()
		return
	}
	for i, seat := range r.seats {
		if seat == nil && r.bots[i] == nil {
			r.seats[i] = m
			r.log.Infow("member seated", "room", r.ID, "name", m.Name(), "seat", i)
			r.broadcastRoomInfo()
			return
		}
	}
	r.sendTo(m, serverMessage{Type: "error", Message: "room full"})
	m.Close()
}

// dropMember frees or substitutes the member's seat and reports whether the
// room should shut down.
func (r *Room) dropMember(m Member) bool {
	for i, seat := range r.seats {
		if seat == nil || seat.ID() != m.ID() {
			continue
		}
		r.seats[i] = nil
		if r.game != nil {
			// A bot finishes the game in the leaver's place.
			r.bots[i] = newAgent(i)
			r.log.Infow("member left mid-game, bot substituted", "room", r.ID, "seat", i)
			r.advance()
		}
		break
	}

	for _, seat := range r.seats {
		if seat != nil {
			r.broadcastRoomInfo()
			return false
		}
	}
	r.log.Infow("room empty, closing", "room", r.ID)
	return true
}

func (r *Room) seatOf(m Member) (domain.Seat, bool) {
	for i, seat := range r.seats {
		if seat != nil && seat.ID() == m.ID() {
			return domain.Seat(i), true
		}
	}
	return 0, false
}

func (r *Room) handleRequest(m Member, data []byte) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		r.sendTo(m, serverMessage{Type: "error", Message: "malformed request"})
		return
	}
	seat, seated := r.seatOf(m)
	if !seated {
		r.sendTo(m, serverMessage{Type: "error", Message: "not seated"})
		return
	}

	if msg.Op == "start" {
		r.handleStart(m)
		return
	}
	if r.game == nil || r.round == nil {
		r.sendTo(m, serverMessage{Type: "error", Message: "no game running"})
		return
	}

	var events []app.Event
	var err error
	switch msg.Op {
	case "bid":
		events, err = r.svc.PlaceBid(r.game, r.round, seat, msg.Points)
	case "raise":
		events, err = r.svc.RaiseContract(r.round, seat, msg.Points)
	case "finalize":
		events, err = r.svc.FinalizeContract(r.round, seat)
	case "distribute":
		gifts := make(map[domain.Seat]domain.Card, len(msg.Gifts))
		for _, g := range msg.Gifts {
			gifts[g.Seat] = g.Card
		}
		events, err = r.svc.DistributeCards(r.round, seat, gifts)
	case "play":
		if msg.Card == nil {
			r.sendTo(m, serverMessage{Type: "error", Message: "play needs a card"})
			return
		}
		events, err = r.svc.PlayCard(r.round, seat, *msg.Card)
	default:
		r.sendTo(m, serverMessage{Type: "error", Message: "unknown op " + msg.Op})
		return
	}
	if err != nil {
		r.sendTo(m, serverMessage{Type: "error", Message: err.Error()})
		return
	}
	r.sendEvents(events)
	r.advance()
}

func (r *Room) handleStart(m Member) {
	if r.game != nil {
		r.sendTo(m, serverMessage{Type: "error", Message: "game already running"})
		return
	}

	var names [domain.NumSeats]string
	for i, seat := range r.seats {
		if seat != nil {
			names[i] = seat.Name()
			continue
		}
		if r.bots[i] == nil {
			r.bots[i] = newAgent(i)
		}
		names[i] = r.bots[i].Name
	}

	game, events, err := r.svc.StartMatch(names)
	if err != nil {
		r.sendTo(m, serverMessage{Type: "error", Message: err.Error()})
		return
	}
	r.game = game
	r.sendEvents(events)
	r.broadcastRoomInfo()

	round, events, err := r.svc.StartRound(game)
	if err != nil {
		r.log.Errorw("start round failed", "room", r.ID, "error", err)
		r.game = nil
		return
	}
	r.round = round
	r.sendEvents(events)
	r.advance()
}

func newAgent(seat int) *bot.Agent {
	identity := bot.GetBotIdentity(seat)
	brain, err := bot.NewBrain(bot.LevelFromDifficulty(identity.Difficulty))
	if err != nil {
		brain = &bot.StandardBot{}
	}
	name := identity.DisplayName
	if name == "" {
		name = identity.Username
	}
	return &bot.Agent{ID: identity.UserID, Name: name, Strategy: brain}
}

// advance runs the game forward through bot turns, trick sweeps and round
// rollovers until a human is due to act or the game ends.
func (r *Room) advance() {
	for r.game != nil && r.round != nil {
		if r.round.Phase() == domain.PhasePlaying && r.round.TrickComplete() {
			events, err := r.svc.DismissTrick(r.game, r.round)
			if err != nil {
				r.log.Errorw("dismiss trick failed", "room", r.ID, "error", err)
				return
			}
			r.sendEvents(events)
			continue
		}
		if r.round.Aborted() || r.round.Phase() == domain.PhaseScoring {
			round, events, err := r.svc.StartRound(r.game)
			if err != nil {
				r.log.Errorw("next round failed", "room", r.ID, "error", err)
				return
			}
			r.round = round
			r.sendEvents(events)
			continue
		}

		seat := r.round.ActiveSeat()
		agent := r.bots[seat]
		if agent == nil {
			return
		}
		action := agent.Act(r.round, seat)
		var events []app.Event
		var err error
		switch action.Kind {
		case bot.ActionBid:
			events, err = r.svc.PlaceBid(r.game, r.round, seat, action.Points)
		case bot.ActionRaise:
			events, err = r.svc.RaiseContract(r.round, seat, action.Points)
		case bot.ActionFinalize:
			events, err = r.svc.FinalizeContract(r.round, seat)
		case bot.ActionDistribute:
			events, err = r.svc.DistributeCards(r.round, seat, action.Gifts)
		case bot.ActionPlay:
			events, err = r.svc.PlayCard(r.round, seat, action.Card)
		default:
			return
		}
		if err != nil {
			r.log.Errorw("bot action rejected", "room", r.ID, "seat", seat, "action", action.Kind, "error", err)
			return
		}
		r.sendEvents(events)
	}
}

// sendEvents pushes app events to their recipients. Events addressed only to
// bot seats are dropped.
func (r *Room) sendEvents(events []app.Event) {
	for _, ev := range events {
		msg := serverMessage{Type: "event", Kind: ev.Kind, Payload: ev.Payload}
		if len(ev.Recipients) == 0 {
			r.broadcast(msg)
		} else {
			for _, seat := range ev.Recipients {
				if m := r.seats[seat]; m != nil {
					r.sendTo(m, msg)
				}
			}
		}

		if ev.Kind == app.EventGameEnded {
			r.log.Infow("game ended", "room", r.ID, "totals", r.game.Totals(), "winners", r.game.Winners())
			r.game = nil
			r.round = nil
			r.bots = [domain.NumSeats]*bot.Agent{}
		}
	}
}

func (r *Room) broadcast(msg serverMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		r.log.Errorw("marshal message failed", "room", r.ID, "error", err)
		return
	}
	for _, m := range r.seats {
		if m != nil {
			m.Send(data)
		}
	}
}

func (r *Room) sendTo(m Member, msg serverMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		r.log.Errorw("marshal message failed", "room", r.ID, "error", err)
		return
	}
	m.Send(data)
}

func (r *Room) broadcastRoomInfo() {
	info := roomInfo{RoomID: r.ID, Name: r.Name}
	for i := range r.seats {
		switch {
		case r.seats[i] != nil:
			info.Seats[i] = r.seats[i].Name()
		case r.bots[i] != nil:
			info.Seats[i] = r.bots[i].Name
			info.Bots[i] = true
		}
	}
	r.broadcast(serverMessage{Type: "room", Payload: info})
}
