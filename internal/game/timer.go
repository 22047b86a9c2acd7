package game

import (
	"context"
	"time"

	"drawit/internal/model"
)

type phaseTimer struct {
	cancel   context.CancelFunc
	deadline time.Time
}

// startTimer replaces the phase timer with one lasting d. The first
// countdown packet carries the phase and goes out before returning.
// Caller holds r.mu.
func (r *Room) startTimer(d time.Duration) {
	r.stopTimer()

	ctx, cancel := context.WithCancel(context.Background())
	t := &phaseTimer{cancel: cancel, deadline: r.now().Add(d)}
	r.timer = t

	r.broadcast(encode(model.NewPhaseChange(r.phase, d.Milliseconds(), r.drawerName())))
	go r.runTimer(ctx, t, d)
}

// stopTimer cancels the phase timer. Caller holds r.mu.
func (r *Room) stopTimer() {
	if r.timer != nil {
		r.timer.cancel()
		r.timer = nil
	}
}

// remaining is the time left on the phase timer. Caller holds r.mu.
func (r *Room) remaining() time.Duration {
	if r.timer == nil {
		return 0
	}
	return max(0, r.timer.deadline.Sub(r.now()))
}

// TimerActive reports whether a phase timer is running
func (r *Room) TimerActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer != nil
}

func (r *Room) runTimer(ctx context.Context, t *phaseTimer, d time.Duration) {
	ticker := time.NewTicker(r.opts.Tick)
	defer ticker.Stop()

	left := d
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		left -= r.opts.Tick

		r.mu.Lock()
		if r.timer != t {
			r.mu.Unlock()
			return
		}
		if left <= 0 {
			r.timer = nil
			t.cancel()
			r.advance()
			r.mu.Unlock()
			return
		}
		r.broadcast(encode(model.NewPhaseChange("", left.Milliseconds(), r.drawerName())))
		r.mu.Unlock()
	}
}
