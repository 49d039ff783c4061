package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/desertthunder/mica/internal/playback"
	"github.com/desertthunder/mica/internal/shared"
)

const (
	demoMinDuration = 2*time.Minute + 30*time.Second
	demoSpread      = 90
)

// DemoPlayer simulates an always available premium player with a local clock.
type DemoPlayer struct {
	mu         sync.Mutex
	now        Clock
	connected  bool
	premium    bool
	connectErr error
	mirror     playback.Mirror
	subs       []chan Event
	endTimer   *time.Timer
	calls      []string
}

// DemoOption configures a [DemoPlayer].
type DemoOption func(*DemoPlayer)

// WithDemoClock replaces the wall clock.
func WithDemoClock(c Clock) DemoOption {
	return func(d *DemoPlayer) { d.now = c }
}

// WithDemoPremium sets the simulated account tier.
func WithDemoPremium(premium bool) DemoOption {
	return func(d *DemoPlayer) { d.premium = premium }
}

// WithDemoConnectError makes every Connect fail with err.
func WithDemoConnectError(err error) DemoOption {
	return func(d *DemoPlayer) { d.connectErr = err }
}

// NewDemoPlayer creates a simulated player.
func NewDemoPlayer(opts ...DemoOption) *DemoPlayer {
	d := &DemoPlayer{now: time.Now, premium: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DemoDuration derives a stable track length from uri.
func DemoDuration(uri string) time.Duration {
	h := fnv.New32a()
	h.Write([]byte(uri))
	return demoMinDuration + time.Duration(h.Sum32()%demoSpread)*time.Second
}

// Name returns "Demo".
func (d *DemoPlayer) Name() string { return "Demo" }

// SetConnectError changes the error returned by subsequent Connect calls; nil lets them succeed.
func (d *DemoPlayer) SetConnectError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connectErr = err
}

// Connect marks the player connected unless a connect error is configured.
func (d *DemoPlayer) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("connect")
	if d.connectErr != nil {
		return fmt.Errorf("%w: %w", shared.ErrAuthFailed, d.connectErr)
	}
	d.connected = true
	return nil
}

// Disconnect stops playback and closes every subscription.
func (d *DemoPlayer) Disconnect() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("disconnect")
	d.connected = false
	d.stopTimer()
	d.mirror.Reset()
	for _, ch := range d.subs {
		close(ch)
	}
	d.subs = nil
}

// Drop simulates the session being lost: subscribers receive [EventDisconnected] and their channels close.
func (d *DemoPlayer) Drop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connected = false
	d.stopTimer()
	for _, ch := range d.subs {
		select {
		case ch <- Event{Kind: EventDisconnected, ReceivedAt: d.now(), Err: shared.ErrNotConnected}:
		default:
		}
		close(ch)
	}
	d.subs = nil
}

// Connected reports whether Connect succeeded.
func (d *DemoPlayer) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// Premium reports the simulated tier.
func (d *DemoPlayer) Premium(ctx context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return false, shared.ErrNotConnected
	}
	return d.premium, nil
}

// Play starts uri from zero.
func (d *DemoPlayer) Play(ctx context.Context, uri string) error {
	return d.update("play "+uri, func(now time.Time) error {
		d.mirror.Apply(playback.State{TrackURI: uri, Duration: DemoDuration(uri)}, now)
		return nil
	})
}

// Pause freezes the simulated position.
func (d *DemoPlayer) Pause(ctx context.Context) error {
	return d.update("pause", func(now time.Time) error {
		if !d.mirror.Loaded() {
			return fmt.Errorf("%w: nothing is playing", shared.ErrPlaybackFailed)
		}
		d.mirror.Pause(now)
		return nil
	})
}

// Resume continues the simulated position.
func (d *DemoPlayer) Resume(ctx context.Context) error {
	return d.update("resume", func(now time.Time) error {
		if !d.mirror.Loaded() {
			return fmt.Errorf("%w: nothing to resume", shared.ErrPlaybackFailed)
		}
		if d.mirror.Position(now) >= d.mirror.Duration() {
			d.mirror.SeekTo(0, now)
		}
		d.mirror.Resume(now)
		return nil
	})
}

// Seek moves the simulated position.
func (d *DemoPlayer) Seek(ctx context.Context, position time.Duration) error {
	return d.update(fmt.Sprintf("seek %s", shared.FormatClock(position)), func(now time.Time) error {
		if !d.mirror.Loaded() {
			return fmt.Errorf("%w: nothing is playing", shared.ErrPlaybackFailed)
		}
		d.mirror.SeekTo(position, now)
		return nil
	})
}

// State returns the simulated state projected to now.
func (d *DemoPlayer) State(ctx context.Context) (*playback.State, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return nil, shared.ErrNotConnected
	}
	st := d.stateLocked(d.now())
	return &st, nil
}

// Subscribe returns a channel receiving an event for every state change.
func (d *DemoPlayer) Subscribe(ctx context.Context) (<-chan Event, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return nil, shared.ErrNotConnected
	}

	ch := make(chan Event, 16)
	d.subs = append(d.subs, ch)
	go func() {
		<-ctx.Done()
		d.unsubscribe(ch)
	}()
	return ch, nil
}

// Calls returns the recorded operations in order.
func (d *DemoPlayer) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

func (d *DemoPlayer) unsubscribe(ch chan Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, c := range d.subs {
		if c == ch {
			d.subs = append(d.subs[:i], d.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

func (d *DemoPlayer) record(call string) {
	d.calls = append(d.calls, call)
}

// update applies fn under the lock, then publishes the new state and re-arms the end-of-track timer.
func (d *DemoPlayer) update(call string, fn func(now time.Time) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record(call)
	if !d.connected {
		return shared.ErrNotConnected
	}

	now := d.now()
	if err := fn(now); err != nil {
		return err
	}
	d.publishLocked(now)
	d.armLocked(now)
	return nil
}

func (d *DemoPlayer) stateLocked(now time.Time) playback.State {
	return playback.State{
		TrackURI: d.mirror.Track(),
		Paused:   !d.mirror.Playing(),
		Position: d.mirror.Position(now),
		Duration: d.mirror.Duration(),
	}
}

func (d *DemoPlayer) publishLocked(now time.Time) {
	ev := Event{Kind: EventState, State: d.stateLocked(now), ReceivedAt: now}
	for _, ch := range d.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// armLocked schedules the paused-at-end event the way a finished track reports itself.
func (d *DemoPlayer) armLocked(now time.Time) {
	d.stopTimer()
	if !d.mirror.Playing() {
		return
	}
	remaining := playback.Remaining(d.mirror.Snapshot(), now)
	d.endTimer = time.AfterFunc(remaining, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if !d.connected || !d.mirror.Playing() {
			return
		}
		end := d.now()
		d.mirror.SeekTo(d.mirror.Duration(), end)
		d.mirror.Pause(end)
		d.publishLocked(end)
	})
}

func (d *DemoPlayer) stopTimer() {
	if d.endTimer != nil {
		d.endTimer.Stop()
		d.endTimer = nil
	}
}
