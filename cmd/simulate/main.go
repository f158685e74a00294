package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"tysyacha/internal/app"
	"tysyacha/internal/bot"
	"tysyacha/internal/domain"
)

// roundLimit caps a single simulated game so a stalled strategy cannot hang
// the simulator.
const roundLimit = 500

func main() {
	var (
		seed    = flag.Int64("seed", 1, "base rng seed, incremented per game")
		games   = flag.Int("games", 1, "number of games to simulate")
		level   = flag.String("level", "standard", "bot strategy: cautious or standard")
		verbose = flag.Bool("v", false, "log every round")
	)
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	botLevel := bot.BotLevelStandard
	if *level == "cautious" {
		botLevel = bot.BotLevelCautious
	}

	wins := [domain.NumSeats]int{}
	for g := 0; g < *games; g++ {
		winners, totals, err := simulateGame(*seed+int64(g), botLevel, log)
		if err != nil {
			log.Fatalw("simulation failed", "game", g, "error", err)
		}
		for _, w := range winners {
			wins[w]++
		}
		log.Infow("game finished", "game", g, "winners", winners, "totals", totals)
	}
	log.Infow("simulation complete", "games", *games, "wins_by_seat", wins)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}

func simulateGame(seed int64, level bot.BotLevel, log *zap.SugaredLogger) ([]domain.Seat, [domain.NumSeats]int, error) {
	svc := app.NewService(rand.New(rand.NewSource(seed)))

	var agents [domain.NumSeats]*bot.Agent
	var names [domain.NumSeats]string
	for i := range agents {
		brain, err := bot.NewBrain(level)
		if err != nil {
			return nil, [domain.NumSeats]int{}, err
		}
		names[i] = fmt.Sprintf("bot-%d", i)
		agents[i] = &bot.Agent{ID: names[i], Name: names[i], Strategy: brain}
	}

	game, _, err := svc.StartMatch(names)
	if err != nil {
		return nil, [domain.NumSeats]int{}, err
	}

	for rounds := 0; !game.Finished(); rounds++ {
		if rounds >= roundLimit {
			return nil, [domain.NumSeats]int{}, fmt.Errorf("game exceeded %d rounds", roundLimit)
		}
		round, _, err := svc.StartRound(game)
		if err != nil {
			return nil, [domain.NumSeats]int{}, err
		}
		if err := playRound(svc, game, round, agents); err != nil {
			return nil, [domain.NumSeats]int{}, err
		}
		log.Debugw("round done",
			"round", game.RoundNumber(),
			"aborted", round.Aborted(),
			"totals", game.Totals(),
		)
	}
	return game.Winners(), game.Totals(), nil
}

func playRound(svc *app.Service, game *domain.Game, round *domain.Round, agents [domain.NumSeats]*bot.Agent) error {
	for {
		if round.Aborted() || round.Phase() == domain.PhaseScoring {
			return nil
		}
		if round.Phase() == domain.PhasePlaying && round.TrickComplete() {
			if _, err := svc.DismissTrick(game, round); err != nil {
				return err
			}
			continue
		}

		seat := round.ActiveSeat()
		action := agents[seat].Act(round, seat)
		var err error
		switch action.Kind {
		case bot.ActionBid:
			_, err = svc.PlaceBid(game, round, seat, action.Points)
		case bot.ActionRaise:
			_, err = svc.RaiseContract(round, seat, action.Points)
		case bot.ActionFinalize:
			_, err = svc.FinalizeContract(round, seat)
		case bot.ActionDistribute:
			_, err = svc.DistributeCards(round, seat, action.Gifts)
		case bot.ActionPlay:
			_, err = svc.PlayCard(round, seat, action.Card)
		default:
			return fmt.Errorf("seat %d produced no action in phase %s", seat, round.Phase())
		}
		if err != nil {
			return fmt.Errorf("seat %d action %s: %w", seat, action.Kind, err)
		}
	}
}
