// package services defines interface Player for controlling a remote music player
//
// Spotify (Web API), Demo (simulated)
package services

import (
	"context"
	"time"

	"github.com/desertthunder/mica/internal/playback"
)

// Player defines the playback collaborator driven by the UI and the CLI.
type Player interface {
	// Connect establishes the session. Returns an error if authentication or the connection fails.
	Connect(ctx context.Context) error

	// Disconnect tears down the session and closes any subscription channels.
	Disconnect()

	// Connected reports whether the session is usable.
	Connected() bool

	// Premium reports whether the account may control playback.
	Premium(ctx context.Context) (bool, error)

	// Play starts the track identified by uri from the beginning.
	Play(ctx context.Context, uri string) error

	// Pause pauses playback.
	Pause(ctx context.Context) error

	// Resume continues playback of the current track.
	Resume(ctx context.Context) error

	// Seek moves the playback position.
	Seek(ctx context.Context, position time.Duration) error

	// State fetches the current player state.
	State(ctx context.Context) (*playback.State, error)

	// Subscribe streams player events until ctx is cancelled or the player disconnects.
	Subscribe(ctx context.Context) (<-chan Event, error)

	// Name returns the name of the player (e.g., "Spotify", "Demo")
	Name() string
}

// EventKind enumerates player events.
type EventKind int

const (
	// EventState carries a new authoritative player state.
	EventState EventKind = iota
	// EventDisconnected reports that the session was lost.
	EventDisconnected
)

// Event is a player notification.
type Event struct {
	Kind       EventKind
	State      playback.State
	ReceivedAt time.Time
	Err        error
}

// Clock returns the current wall-clock time.
type Clock func() time.Time
