package game

import "time"

// Options holds room timing and scoring parameters
type Options struct {
	Tick         time.Duration
	PingInterval time.Duration
	RemoveAfter  time.Duration

	WaitingForStart time.Duration
	NewRound        time.Duration
	GameRunning     time.Duration
	ShowWord        time.Duration

	PenaltyNobodyGuessed int
	GuessScoreBase       int
	GuessScoreMultiplier int
	DrawerBonus          int
	WordChoices          int
}

// DefaultOptions returns the stock game timings and scores
func DefaultOptions() Options {
	return Options{
		Tick:                 time.Second,
		PingInterval:         3 * time.Second,
		RemoveAfter:          time.Minute,
		WaitingForStart:      10 * time.Second,
		NewRound:             20 * time.Second,
		GameRunning:          time.Minute,
		ShowWord:             10 * time.Second,
		PenaltyNobodyGuessed: 50,
		GuessScoreBase:       50,
		GuessScoreMultiplier: 50,
		DrawerBonus:          50,
		WordChoices:          3,
	}
}

// withDefaults fills zero durations and counts from DefaultOptions
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Tick <= 0 {
		o.Tick = d.Tick
	}
	if o.PingInterval <= 0 {
		o.PingInterval = d.PingInterval
	}
	if o.RemoveAfter <= 0 {
		o.RemoveAfter = d.RemoveAfter
	}
	if o.WaitingForStart <= 0 {
		o.WaitingForStart = d.WaitingForStart
	}
	if o.NewRound <= 0 {
		o.NewRound = d.NewRound
	}
	if o.GameRunning <= 0 {
		o.GameRunning = d.GameRunning
	}
	if o.ShowWord <= 0 {
		o.ShowWord = d.ShowWord
	}
	if o.WordChoices <= 0 {
		o.WordChoices = d.WordChoices
	}
	return o
}

// GuessScore is the score awarded for a correct guess after elapsed of a round lasting roundDuration
func GuessScore(base, multiplier int, elapsed, roundDuration time.Duration) int {
	left := 1.0
	if roundDuration > 0 {
		left = 1 - float64(elapsed)/float64(roundDuration)
	}
	if left < 0 {
		left = 0
	}
	if left > 1 {
		left = 1
	}
	return int(float64(base) + float64(multiplier)*left)
}
