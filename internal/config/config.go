package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type GameConfig struct {
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before
	// filling an empty seat in a solo human lobby with a bot.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	// BotActDelayMs is the pause before a bot submits its action, so bot
	// turns read naturally on the client.
	BotActDelayMs int `json:"bot_act_delay_ms"`
	// TrickDismissDelayMs is how long a completed trick stays on the table
	// before the host sweeps it.
	TrickDismissDelayMs int `json:"trick_dismiss_delay_ms"`
	// BotDifficulty overrides the identity pool difficulty when non-empty.
	BotDifficulty string `json:"bot_difficulty"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// TurnDuration returns the configured per-turn timeout in seconds, with a
// safe default when no config was loaded.
func TurnDuration() int {
	if cfg == nil || cfg.TurnDurationSeconds <= 0 {
		return 30
	}
	return cfg.TurnDurationSeconds
}

// BotAutoFillDelay returns the seconds to wait before seating bots.
func BotAutoFillDelay() int {
	if cfg == nil || cfg.BotAutoFillDelaySeconds <= 0 {
		return 10
	}
	return cfg.BotAutoFillDelaySeconds
}

// BotActDelay returns the per-action bot delay in milliseconds.
func BotActDelay() int {
	if cfg == nil || cfg.BotActDelayMs <= 0 {
		return 800
	}
	return cfg.BotActDelayMs
}

// TrickDismissDelay returns the completed-trick display time in milliseconds.
func TrickDismissDelay() int {
	if cfg == nil || cfg.TrickDismissDelayMs <= 0 {
		return 1200
	}
	return cfg.TrickDismissDelayMs
}
