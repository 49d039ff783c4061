package playback

import "time"

// Ticker tracks the generation of the periodic UI refresh.
type Ticker struct {
	interval time.Duration
	gen      int
	active   bool
}

// NewTicker creates an inactive ticker firing every interval.
func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{interval: interval}
}

// Start opens a new generation and returns it. Any earlier generation becomes stale.
func (t *Ticker) Start() int {
	t.gen++
	t.active = true
	return t.gen
}

// Stop cancels the current generation.
func (t *Ticker) Stop() {
	if !t.active {
		return
	}
	t.gen++
	t.active = false
}

// Accept reports whether a tick from gen should be handled and rescheduled.
func (t *Ticker) Accept(gen int) bool {
	return t.active && gen == t.gen
}

// Active reports whether a tick chain is running.
func (t *Ticker) Active() bool { return t.active }

// Interval returns the tick period.
func (t *Ticker) Interval() time.Duration { return t.interval }

// Generation returns the current generation.
func (t *Ticker) Generation() int { return t.gen }
