package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"tysyacha/internal/app"
	"tysyacha/internal/bot"
	"tysyacha/internal/config"
	"tysyacha/internal/domain"
	"tysyacha/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// tickRate is the Nakama match loop frequency in ticks per second.
const tickRate = 4

// MatchState holds the authoritative runtime state for the Nakama match
// handler. The domain state lives in Game and Round; everything else is
// seating, pacing and presence bookkeeping.
type MatchState struct {
	Seats     [domain.NumSeats]string     `json:"seats"` // user IDs, empty string means open
	OwnerSeat int                         `json:"owner_seat"`
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"`
	App       *app.Service                `json:"-"`
	Game      *domain.Game                `json:"-"` // nil while in the lobby
	Round     *domain.Round               `json:"-"`

	BotsEnabled        bool                  `json:"bots_enabled"`
	BotActDelayTicks   int64                 `json:"bot_act_delay_ticks"`
	DismissDelayTicks  int64                 `json:"dismiss_delay_ticks"`
	AutoFillDelayTicks int64                 `json:"auto_fill_delay_ticks"`
	BotWaitUntil       int64                 `json:"bot_wait_until"`
	DismissAt          int64                 `json:"dismiss_at"`
	SoloSinceTick      int64                 `json:"solo_since_tick"`
	Bots               map[string]*bot.Agent `json:"-"`
	Stats              ports.StatsPort       `json:"-"`
}

func (ms *MatchState) OpenSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) OccupiedSeatCount() int {
	return domain.NumSeats - ms.OpenSeatCount()
}

func (ms *MatchState) HumanCount() int {
	count := 0
	for _, userID := range ms.Seats {
		if userID != "" && !ms.isBotUser(userID) {
			count++
		}
	}
	return count
}

// isBotUser covers both the provisioned bot pool and agents fabricated for
// this match when no pool is loaded.
func (ms *MatchState) isBotUser(userID string) bool {
	if _, ok := ms.Bots[userID]; ok {
		return true
	}
	return bot.IsBot(userID)
}

func (ms *MatchState) seatOf(userID string) (domain.Seat, bool) {
	for i, id := range ms.Seats {
		if id != "" && id == userID {
			return domain.Seat(i), true
		}
	}
	return 0, false
}

func (ms *MatchState) firstHumanSeat() int {
	for i, userID := range ms.Seats {
		if userID != "" && !ms.isBotUser(userID) {
			return i
		}
	}
	return -1
}

func (ms *MatchState) displayName(userID string) string {
	if p, ok := ms.Presences[userID]; ok {
		return p.GetUsername()
	}
	if agent, ok := ms.Bots[userID]; ok {
		return agent.Name
	}
	if cfg, ok := bot.GetBotConfig(userID); ok && cfg.DisplayName != "" {
		return cfg.DisplayName
	}
	return userID
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: could not load game config: %v", err)
	}

	state := &MatchState{
		OwnerSeat:          -1,
		Presences:          make(map[string]runtime.Presence),
		App:                app.NewService(nil),
		Bots:               make(map[string]*bot.Agent),
		Stats:              NewStatsAdapter(nk),
		BotsEnabled:        true,
		BotActDelayTicks:   msToTicks(config.BotActDelay()),
		DismissDelayTicks:  msToTicks(config.TrickDismissDelay()),
		AutoFillDelayTicks: int64(config.BotAutoFillDelay()) * tickRate,
	}

	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if val, ok := env["tysyacha_bots_enabled"]; ok {
			state.BotsEnabled = val != "false"
		}
	}

	label, err := MatchLabel{Game: "tysyacha", Open: domain.NumSeats, State: "lobby"}.Encode()
	if err != nil {
		logger.Error("MatchInit: failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, tickRate, label
}

func msToTicks(ms int) int64 {
	ticks := int64(ms) * tickRate / 1000
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.OpenSeatCount() > 0 {
		return state, true, ""
	}
	// A bot seat can be reclaimed while still in the lobby.
	if matchState.Game == nil {
		for _, userID := range matchState.Seats {
			if matchState.isBotUser(userID) {
				return state, true, ""
			}
		}
	}
	return state, false, "match full"
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		assigned := false
		for i, userID := range matchState.Seats {
			if userID == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}
		if !assigned && matchState.Game == nil {
			for i, userID := range matchState.Seats {
				if matchState.isBotUser(userID) {
					logger.Info("MatchJoin: replacing bot %s with %s in seat %d", userID, p.GetUserId(), i)
					delete(matchState.Bots, userID)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}
		if !assigned {
			logger.Warn("MatchJoin: user %s joined with no seat available", p.GetUserId())
		}
	}

	if matchState.OwnerSeat < 0 || matchState.Seats[matchState.OwnerSeat] == "" ||
		matchState.isBotUser(matchState.Seats[matchState.OwnerSeat]) {
		matchState.OwnerSeat = matchState.firstHumanSeat()
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher)
	return matchState
}

func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		for i, userID := range matchState.Seats {
			if userID != p.GetUserId() {
				continue
			}
			if matchState.Game != nil {
				// Keep the round playable by seating a bot in the
				// leaver's place.
				agent := mh.seatBot(matchState, i, logger)
				logger.Info("MatchLeave: user %s left mid-game, bot %s takes seat %d", userID, agent.ID, i)
			} else {
				matchState.Seats[i] = ""
			}
			break
		}
	}

	if matchState.firstHumanSeat() == -1 {
		logger.Info("MatchLeave: terminating match with no humans")
		return nil
	}
	matchState.OwnerSeat = matchState.firstHumanSeat()

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher)
	return matchState
}

// seatBot places a bot agent into the given seat and returns it.
func (mh *matchHandler) seatBot(state *MatchState, seat int, logger runtime.Logger) *bot.Agent {
	identity := bot.GetBotIdentity(seat)
	difficulty := identity.Difficulty
	if cfg := config.GetGameConfig(); cfg != nil && cfg.BotDifficulty != "" {
		difficulty = cfg.BotDifficulty
	}
	brain, err := bot.NewBrain(bot.LevelFromDifficulty(difficulty))
	if err != nil {
		logger.Warn("seatBot: %v, falling back to the standard strategy", err)
		brain = &bot.StandardBot{}
	}

	agent := &bot.Agent{ID: identity.UserID, Name: identity.DisplayName, Strategy: brain}
	state.Seats[seat] = identity.UserID
	state.Bots[identity.UserID] = agent
	return agent
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpPlaceBid:
			mh.handlePlaceBid(ctx, matchState, dispatcher, logger, msg)
		case OpRaiseContract:
			mh.handleRaiseContract(ctx, matchState, dispatcher, logger, msg)
		case OpFinalizeContract:
			mh.handleFinalizeContract(ctx, matchState, dispatcher, logger, msg)
		case OpDistributeCards:
			mh.handleDistributeCards(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: unknown opcode %d", msg.GetOpCode())
		}
	}

	mh.tickDismiss(ctx, matchState, dispatcher, logger)
	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}
	return matchState
}

// tickDismiss sweeps a completed trick after the configured display delay.
func (mh *matchHandler) tickDismiss(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Round == nil || state.Round.Phase() != domain.PhasePlaying || !state.Round.TrickComplete() {
		state.DismissAt = 0
		return
	}
	if state.DismissAt == 0 {
		state.DismissAt = state.Tick + state.DismissDelayTicks
		return
	}
	if state.Tick < state.DismissAt {
		return
	}
	state.DismissAt = 0

	events, err := state.App.DismissTrick(state.Game, state.Round)
	if err != nil {
		logger.Error("tickDismiss: %v", err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.maybeAdvanceRound(ctx, state, dispatcher, logger)
}

// maybeAdvanceRound deals the next round after an aborted auction or a scored
// round, as long as the game is still running.
func (mh *matchHandler) maybeAdvanceRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil || state.Round == nil {
		return
	}
	if !state.Round.Aborted() && state.Round.Phase() != domain.PhaseScoring {
		return
	}

	round, events, err := state.App.StartRound(state.Game)
	if err != nil {
		logger.Error("maybeAdvanceRound: %v", err)
		return
	}
	state.Round = round
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// Fill open lobby seats with bots once a human has waited long enough.
	if state.Game == nil {
		if state.HumanCount() >= 1 && state.OpenSeatCount() > 0 {
			if state.SoloSinceTick == 0 {
				state.SoloSinceTick = state.Tick
			}
			if state.Tick-state.SoloSinceTick >= state.AutoFillDelayTicks {
				for i, userID := range state.Seats {
					if userID == "" {
						agent := mh.seatBot(state, i, logger)
						logger.Info("processBots: bot %s fills seat %d", agent.ID, i)
					}
				}
				state.SoloSinceTick = 0
				mh.updateLabel(state, dispatcher, logger)
				mh.broadcastMatchState(state, dispatcher)
			}
		} else {
			state.SoloSinceTick = 0
		}
		return
	}

	if state.Round == nil || state.Round.TrickComplete() {
		state.BotWaitUntil = 0
		return
	}
	active := state.Round.ActiveSeat()
	userID := state.Seats[active]
	agent, isBot := state.Bots[userID]
	if !isBot {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		state.BotWaitUntil = state.Tick + state.BotActDelayTicks
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	action := agent.Act(state.Round, active)
	var events []app.Event
	var err error
	switch action.Kind {
	case bot.ActionBid:
		events, err = state.App.PlaceBid(state.Game, state.Round, active, action.Points)
	case bot.ActionRaise:
		events, err = state.App.RaiseContract(state.Round, active, action.Points)
	case bot.ActionFinalize:
		events, err = state.App.FinalizeContract(state.Round, active)
	case bot.ActionDistribute:
		events, err = state.App.DistributeCards(state.Round, active, action.Gifts)
	case bot.ActionPlay:
		events, err = state.App.PlayCard(state.Round, active, action.Card)
	default:
		return
	}
	if err != nil {
		logger.Error("processBots: bot %s action %s rejected: %v", userID, action.Kind, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.maybeAdvanceRound(ctx, state, dispatcher, logger)
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat, seated := state.seatOf(msg.GetUserId())
	if !seated || int(senderSeat) != state.OwnerSeat {
		logger.Warn("handleStartGame: %s is not the match owner", msg.GetUserId())
		return
	}
	if state.Game != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 409, "game already running")
		return
	}
	if state.OccupiedSeatCount() < domain.NumSeats {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "waiting for players")
		return
	}

	var names [domain.NumSeats]string
	for i, userID := range state.Seats {
		names[i] = state.displayName(userID)
	}
	game, events, err := state.App.StartMatch(names)
	if err != nil {
		logger.Error("handleStartGame: %v", err)
		return
	}
	state.Game = game
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}

	round, events, err := state.App.StartRound(game)
	if err != nil {
		logger.Error("handleStartGame: start round: %v", err)
		state.Game = nil
		return
	}
	state.Round = round
	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// senderContext resolves the message sender to a seated player with a running
// round, reporting the rejection to the client when it cannot.
func (mh *matchHandler) senderContext(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) (domain.Seat, bool) {
	seat, seated := state.seatOf(msg.GetUserId())
	if !seated {
		logger.Warn("message from unseated user %s", msg.GetUserId())
		return 0, false
	}
	if state.Game == nil || state.Round == nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "no game running")
		return 0, false
	}
	return seat, true
}

func (mh *matchHandler) handlePlaceBid(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat, ok := mh.senderContext(state, dispatcher, logger, msg)
	if !ok {
		return
	}
	var req PlaceBidRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "malformed bid request")
		return
	}

	events, err := state.App.PlaceBid(state.Game, state.Round, seat, req.Points)
	if err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.maybeAdvanceRound(ctx, state, dispatcher, logger)
}

func (mh *matchHandler) handleRaiseContract(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat, ok := mh.senderContext(state, dispatcher, logger, msg)
	if !ok {
		return
	}
	var req RaiseContractRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "malformed raise request")
		return
	}

	events, err := state.App.RaiseContract(state.Round, seat, req.Points)
	if err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleFinalizeContract(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat, ok := mh.senderContext(state, dispatcher, logger, msg)
	if !ok {
		return
	}
	events, err := state.App.FinalizeContract(state.Round, seat)
	if err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleDistributeCards(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat, ok := mh.senderContext(state, dispatcher, logger, msg)
	if !ok {
		return
	}
	var req DistributeCardsRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "malformed distribute request")
		return
	}
	gifts := make(map[domain.Seat]domain.Card, len(req.Gifts))
	for _, g := range req.Gifts {
		gifts[g.Seat] = g.Card
	}

	events, err := state.App.DistributeCards(state.Round, seat, gifts)
	if err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat, ok := mh.senderContext(state, dispatcher, logger, msg)
	if !ok {
		return
	}
	var req PlayCardRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "malformed play request")
		return
	}

	events, err := state.App.PlayCard(state.Round, seat, req.Card)
	if err != nil {
		logger.Warn("handlePlayCard: seat %d rejected playing %s: %v", seat, req.Card, err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// broadcastEvent serializes an app event and dispatches it, honoring the
// event's recipient list. Targeted events whose recipients are all bots are
// dropped rather than leaked to the table.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	data, err := json.Marshal(EventMessage{Kind: ev.Kind, Payload: ev.Payload})
	if err != nil {
		logger.Error("broadcastEvent: marshal %s: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, seat := range ev.Recipients {
			if p, ok := state.Presences[state.Seats[seat]]; ok {
				recipients = append(recipients, p)
			}
		}
		if len(recipients) == 0 {
			return
		}
	}
	dispatcher.BroadcastMessage(OpGameEvent, data, recipients, nil, true)

	if ev.Kind == app.EventGameEnded {
		mh.finishGame(ctx, state, dispatcher, logger, ev.Payload.(app.GameEndedPayload))
	}
}

// finishGame records the outcome and returns the match to the lobby.
func (mh *matchHandler) finishGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, payload app.GameEndedPayload) {
	if state.Stats != nil && state.Game != nil {
		outcome := ports.GameOutcome{
			Winners: make([]string, 0, len(payload.Winners)),
			Totals:  make(map[string]int, domain.NumSeats),
			Rounds:  state.Game.RoundNumber(),
		}
		if matchID, ok := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string); ok {
			outcome.MatchID = matchID
		}
		for _, seat := range payload.Winners {
			outcome.Winners = append(outcome.Winners, state.Seats[seat])
		}
		for i, userID := range state.Seats {
			if userID != "" && !state.isBotUser(userID) {
				outcome.Totals[userID] = payload.Totals[i]
			}
		}
		if err := state.Stats.RecordOutcome(ctx, outcome); err != nil {
			logger.Error("finishGame: record outcome: %v", err)
		}
	}

	state.Game = nil
	state.Round = nil
	state.DismissAt = 0
	state.BotWaitUntil = 0
	mh.updateLabel(state, dispatcher, logger)
}

func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		// Bots never receive errors; their actions are validated upstream.
		return
	}
	data, err := json.Marshal(ErrorMessage{Code: code, Message: message})
	if err != nil {
		logger.Error("sendError: marshal: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpGameError, data, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher) {
	snapshot := MatchStateSnapshot{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		State:     "lobby",
	}
	if state.Game != nil {
		snapshot.State = "playing"
	}
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		info := PlayerInfo{
			UserID:      userID,
			Seat:        domain.Seat(i),
			DisplayName: state.displayName(userID),
			IsOwner:     i == state.OwnerSeat,
			IsBot:       state.isBotUser(userID),
		}
		if state.Game != nil {
			info.Total = state.Game.Totals()[i]
		}
		snapshot.Players = append(snapshot.Players, info)
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	dispatcher.BroadcastMessage(OpMatchState, data, nil, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Game != nil {
		phase = "playing"
	}
	label, err := MatchLabel{Game: "tysyacha", Open: state.OpenSeatCount(), State: phase}.Encode()
	if err != nil {
		logger.Error("updateLabel: marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("updateLabel: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
