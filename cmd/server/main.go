package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"tysyacha/internal/bot"
	"tysyacha/internal/config"
	"tysyacha/internal/wsserver"
)

func main() {
	var (
		addr    = flag.String("addr", ":8080", "listen address")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		log.Warnw("game config not loaded, using defaults", "error", err)
	}
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		log.Warnw("bot identities not loaded, using fallbacks", "error", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/play", wsserver.NewServer(log))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	log.Infow("Tysyacha table server listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}
