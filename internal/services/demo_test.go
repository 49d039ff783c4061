package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/mica/internal/shared"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestDemo(t *testing.T, opts ...DemoOption) (*DemoPlayer, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	d := NewDemoPlayer(append([]DemoOption{WithDemoClock(clock.Now)}, opts...)...)
	if err := d.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	t.Cleanup(d.Disconnect)
	return d, clock
}

func TestDemoDuration(t *testing.T) {
	for _, uri := range []string{"spotify:track:1", "spotify:track:2", ""} {
		got := DemoDuration(uri)
		if got < demoMinDuration || got >= demoMinDuration+demoSpread*time.Second {
			t.Errorf("DemoDuration(%q) = %v out of range", uri, got)
		}
		if got != DemoDuration(uri) {
			t.Errorf("DemoDuration(%q) is not stable", uri)
		}
	}
}

func TestDemoPlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("requests before Connect", func(t *testing.T) {
		d := NewDemoPlayer()
		if err := d.Play(ctx, "spotify:track:1"); !errors.Is(err, shared.ErrNotConnected) {
			t.Errorf("expected ErrNotConnected, got %v", err)
		}
		if _, err := d.State(ctx); !errors.Is(err, shared.ErrNotConnected) {
			t.Errorf("expected ErrNotConnected, got %v", err)
		}
	})

	t.Run("connect error", func(t *testing.T) {
		d := NewDemoPlayer(WithDemoConnectError(shared.ErrServiceUnavailable))
		err := d.Connect(ctx)
		if !errors.Is(err, shared.ErrAuthFailed) || !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected wrapped auth failure, got %v", err)
		}
		if d.Connected() {
			t.Error("player should not be connected")
		}

		d.SetConnectError(nil)
		if err := d.Connect(ctx); err != nil {
			t.Errorf("retry should succeed, got %v", err)
		}
	})

	t.Run("premium", func(t *testing.T) {
		d, _ := newTestDemo(t)
		if premium, _ := d.Premium(ctx); !premium {
			t.Error("demo player defaults to premium")
		}

		free, _ := newTestDemo(t, WithDemoPremium(false))
		if premium, _ := free.Premium(ctx); premium {
			t.Error("expected non premium")
		}
	})

	t.Run("play pause resume seek", func(t *testing.T) {
		d, clock := newTestDemo(t)
		uri := "spotify:track:1"

		if err := d.Play(ctx, uri); err != nil {
			t.Fatalf("play failed: %v", err)
		}
		clock.Advance(10 * time.Second)

		st, _ := d.State(ctx)
		if st.TrackURI != uri || st.Paused || st.Position != 10*time.Second {
			t.Errorf("unexpected state after play %+v", st)
		}
		if st.Duration != DemoDuration(uri) {
			t.Errorf("expected duration %v, got %v", DemoDuration(uri), st.Duration)
		}

		if err := d.Pause(ctx); err != nil {
			t.Fatalf("pause failed: %v", err)
		}
		clock.Advance(time.Minute)
		st, _ = d.State(ctx)
		if !st.Paused || st.Position != 10*time.Second {
			t.Errorf("paused position should freeze, got %+v", st)
		}

		if err := d.Seek(ctx, 45*time.Second); err != nil {
			t.Fatalf("seek failed: %v", err)
		}
		if err := d.Resume(ctx); err != nil {
			t.Fatalf("resume failed: %v", err)
		}
		clock.Advance(5 * time.Second)
		st, _ = d.State(ctx)
		if st.Paused || st.Position != 50*time.Second {
			t.Errorf("unexpected state after resume %+v", st)
		}

		want := []string{"connect", "play " + uri, "pause", "seek 0:45", "resume"}
		if got := d.Calls(); strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("expected calls %v, got %v", want, got)
		}
	})

	t.Run("seek clamps to duration", func(t *testing.T) {
		d, _ := newTestDemo(t)
		uri := "spotify:track:2"
		if err := d.Play(ctx, uri); err != nil {
			t.Fatalf("play failed: %v", err)
		}
		if err := d.Seek(ctx, time.Hour); err != nil {
			t.Fatalf("seek failed: %v", err)
		}
		st, _ := d.State(ctx)
		if st.Position != st.Duration {
			t.Errorf("expected position clamped to %v, got %v", st.Duration, st.Position)
		}
	})

	t.Run("pause with nothing loaded", func(t *testing.T) {
		d, _ := newTestDemo(t)
		if err := d.Pause(ctx); !errors.Is(err, shared.ErrPlaybackFailed) {
			t.Errorf("expected ErrPlaybackFailed, got %v", err)
		}
	})
}

func TestDemoSubscribe(t *testing.T) {
	t.Run("publishes state changes", func(t *testing.T) {
		d, _ := newTestDemo(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := d.Subscribe(ctx)
		if err != nil {
			t.Fatalf("subscribe failed: %v", err)
		}

		if err := d.Play(ctx, "spotify:track:1"); err != nil {
			t.Fatalf("play failed: %v", err)
		}
		ev := nextEvent(t, events)
		if ev.Kind != EventState || ev.State.TrackURI != "spotify:track:1" || ev.State.Paused {
			t.Errorf("unexpected event %+v", ev)
		}

		if err := d.Pause(ctx); err != nil {
			t.Fatalf("pause failed: %v", err)
		}
		if ev := nextEvent(t, events); !ev.State.Paused {
			t.Errorf("expected paused event, got %+v", ev)
		}
	})

	t.Run("cancel closes channel", func(t *testing.T) {
		d, _ := newTestDemo(t)
		ctx, cancel := context.WithCancel(context.Background())
		events, err := d.Subscribe(ctx)
		if err != nil {
			t.Fatalf("subscribe failed: %v", err)
		}
		cancel()

		select {
		case _, ok := <-events:
			if ok {
				t.Error("expected closed channel")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("channel not closed after cancel")
		}
	})

	t.Run("drop sends disconnect", func(t *testing.T) {
		d, _ := newTestDemo(t)
		events, err := d.Subscribe(context.Background())
		if err != nil {
			t.Fatalf("subscribe failed: %v", err)
		}

		d.Drop()
		ev := nextEvent(t, events)
		if ev.Kind != EventDisconnected || !errors.Is(ev.Err, shared.ErrNotConnected) {
			t.Errorf("unexpected event %+v", ev)
		}
		if _, ok := <-events; ok {
			t.Error("channel should be closed after drop")
		}
		if d.Connected() {
			t.Error("player should be disconnected")
		}
	})
}
