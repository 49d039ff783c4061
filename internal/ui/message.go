package ui

import (
	"time"

	"github.com/desertthunder/mica/internal/services"
)

// connectedMsg reports the outcome of connecting, checking entitlement and subscribing.
type connectedMsg struct {
	premium bool
	events  <-chan services.Event
	err     error
}

// eventMsg carries one player event into the update loop.
type eventMsg services.Event

// eventsClosedMsg is sent once the subscription channel closes.
type eventsClosedMsg struct{}

// tickMsg is a periodic refresh belonging to generation gen.
type tickMsg struct {
	gen int
	at  time.Time
}

// playbackErrMsg reports a failed playback request.
type playbackErrMsg struct {
	op  string
	err error
}
