package config

import (
	"time"

	"drawit/internal/game"
)

// GameConfig holds room timing and scoring knobs
type GameConfig struct {
	// Durations in milliseconds
	TickMS            int `json:"tickMs"`
	PingIntervalMS    int `json:"pingIntervalMs"`
	PlayerRemoveMS    int `json:"playerRemoveMs"`
	WaitingForStartMS int `json:"waitingForStartMs"`
	NewRoundMS        int `json:"newRoundMs"`
	GameRunningMS     int `json:"gameRunningMs"`
	ShowWordMS        int `json:"showWordMs"`

	PenaltyNobodyGuessed int `json:"penaltyNobodyGuessed"`
	GuessScoreDefault    int `json:"guessScoreDefault"`
	GuessScoreMultiplier int `json:"guessScoreMultiplier"`
	GuessScoreDrawer     int `json:"guessScoreDrawer"`
	WordChoices          int `json:"wordChoices"`
}

// DefaultGameConfig returns the game configuration, overridable per key from the environment
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		TickMS:            getEnvInt("TICK_MS", 1000),
		PingIntervalMS:    getEnvInt("PING_INTERVAL_MS", 3000),
		PlayerRemoveMS:    getEnvInt("PLAYER_REMOVE_MS", 60000),
		WaitingForStartMS: getEnvInt("WAITING_FOR_START_MS", 10000),
		NewRoundMS:        getEnvInt("NEW_ROUND_MS", 20000),
		GameRunningMS:     getEnvInt("GAME_RUNNING_MS", 60000),
		ShowWordMS:        getEnvInt("SHOW_WORD_MS", 10000),

		PenaltyNobodyGuessed: getEnvInt("PENALTY_NOBODY_GUESSED", 50),
		GuessScoreDefault:    getEnvInt("GUESS_SCORE_DEFAULT", 50),
		GuessScoreMultiplier: getEnvInt("GUESS_SCORE_MULTIPLIER", 50),
		GuessScoreDrawer:     getEnvInt("GUESS_SCORE_DRAWER", 50),
		WordChoices:          getEnvInt("WORD_CHOICES", 3),
	}
}

// Options converts the configuration into room options
func (c *GameConfig) Options() game.Options {
	return game.Options{
		Tick:                 ms(c.TickMS),
		PingInterval:         ms(c.PingIntervalMS),
		RemoveAfter:          ms(c.PlayerRemoveMS),
		WaitingForStart:      ms(c.WaitingForStartMS),
		NewRound:             ms(c.NewRoundMS),
		GameRunning:          ms(c.GameRunningMS),
		ShowWord:             ms(c.ShowWordMS),
		PenaltyNobodyGuessed: c.PenaltyNobodyGuessed,
		GuessScoreBase:       c.GuessScoreDefault,
		GuessScoreMultiplier: c.GuessScoreMultiplier,
		DrawerBonus:          c.GuessScoreDrawer,
		WordChoices:          c.WordChoices,
	}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
