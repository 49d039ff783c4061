package playback

import "time"

// Mirror is the local copy of the remote player state.
//
// The zero value is an empty, stopped mirror. It is not safe for concurrent use; the UI loop owns it.
type Mirror struct {
	snap  Snapshot
	track string
}

// Apply replaces the mirrored state with an authoritative sample received at.
func (m *Mirror) Apply(s State, at time.Time) {
	m.track = s.TrackURI
	m.snap = Sample(s, at)
}

// Start records an optimistic play of uri before the player confirms it.
//
// Duration is unknown until the first [Mirror.Apply], so the projection stays at zero.
func (m *Mirror) Start(uri string, now time.Time) {
	m.track = uri
	m.snap = newSnapshot(false, 0, 0, now)
}

// Pause freezes the projection at now.
func (m *Mirror) Pause(now time.Time) {
	if m.snap.Paused {
		return
	}
	m.snap = newSnapshot(true, Project(m.snap, now), m.snap.Duration, now)
}

// Resume restarts the projection clock from now.
func (m *Mirror) Resume(now time.Time) {
	if !m.snap.Paused {
		return
	}
	m.snap = newSnapshot(false, m.snap.Position, m.snap.Duration, now)
}

// SeekTo moves the mirrored position to position, clamped to the duration.
func (m *Mirror) SeekTo(position time.Duration, now time.Time) {
	m.snap = newSnapshot(m.snap.Paused, position, m.snap.Duration, now)
}

// Reset clears the mirror back to the stopped state.
func (m *Mirror) Reset() {
	*m = Mirror{}
}

// Snapshot returns the last stored snapshot.
func (m *Mirror) Snapshot() Snapshot { return m.snap }

// Track returns the mirrored track URI, empty when stopped.
func (m *Mirror) Track() string { return m.track }

// Loaded reports whether a track is mirrored.
func (m *Mirror) Loaded() bool { return m.track != "" }

// Playing reports whether a track is loaded and not paused.
func (m *Mirror) Playing() bool { return m.Loaded() && !m.snap.Paused }

// Position projects the position at now.
func (m *Mirror) Position(now time.Time) time.Duration { return Project(m.snap, now) }

// Duration returns the mirrored track duration.
func (m *Mirror) Duration() time.Duration { return m.snap.Duration }
