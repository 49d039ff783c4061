package playback

import "time"

// State is an authoritative player sample as reported by the player service.
type State struct {
	TrackURI string
	Paused   bool
	Position time.Duration
	Duration time.Duration
}

// Snapshot is a [State] stamped with the wall-clock time it was sampled.
type Snapshot struct {
	Paused    bool
	Position  time.Duration
	Duration  time.Duration
	SampledAt time.Time
}

// clamp keeps position inside [0, duration].
func clamp(position, duration time.Duration) time.Duration {
	if duration <= 0 || position < 0 {
		return 0
	}
	if position > duration {
		return duration
	}
	return position
}

// Sample stamps s with the time it was received.
func Sample(s State, at time.Time) Snapshot {
	return newSnapshot(s.Paused, s.Position, s.Duration, at)
}

func newSnapshot(paused bool, position, duration time.Duration, at time.Time) Snapshot {
	if duration < 0 {
		duration = 0
	}
	return Snapshot{
		Paused:    paused,
		Position:  clamp(position, duration),
		Duration:  duration,
		SampledAt: at,
	}
}
