// Package playback mirrors remote player state and projects the playback position between sparse updates.
//
// # Mirror
//
// [Mirror] holds the last authoritative [Snapshot] received from the player: paused flag, position, duration and the
// wall-clock time the sample arrived. Local actions (pause, resume, seek) update it optimistically so the UI does not
// wait for the next event.
//
// # Projector
//
// [Project] extrapolates the position of a playing snapshot as position + (now - sampled), clamped to the duration.
// A paused snapshot projects to its stored position. The projection never exceeds the duration and never falls
// below the authoritative position when the clock steps backwards.
//
// # Ticker
//
// [Ticker] tracks the periodic UI refresh. Each Start opens a new generation; ticks from older generations are
// rejected, so at most one refresh chain is alive at a time.
package playback
