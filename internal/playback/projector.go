package playback

import "time"

// Project returns the estimated position of s at now.
func Project(s Snapshot, now time.Time) time.Duration {
	if s.Paused || s.Duration <= 0 {
		return clamp(s.Position, s.Duration)
	}

	elapsed := now.Sub(s.SampledAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return clamp(s.Position+elapsed, s.Duration)
}

// Fraction returns the projected progress of s at now in [0, 1].
func Fraction(s Snapshot, now time.Time) float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(Project(s, now)) / float64(s.Duration)
}

// Remaining returns the time left until the end of the track at now.
func Remaining(s Snapshot, now time.Time) time.Duration {
	return s.Duration - Project(s, now)
}

// Diverged reports whether next disagrees with what s projects at now.
//
// A change of paused flag or duration always counts; positions are compared within tolerance so that ordinary
// clock jitter between samples is not reported as a seek.
func Diverged(s Snapshot, next State, now time.Time, tolerance time.Duration) bool {
	if s.Paused != next.Paused || s.Duration != next.Duration {
		return true
	}
	delta := Project(s, now) - clamp(next.Position, next.Duration)
	if delta < 0 {
		delta = -delta
	}
	return delta > tolerance
}
