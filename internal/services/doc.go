// Package services defines the [Player] interface for remote music players and implements it for Spotify and a
// local simulation.
//
// # Player Interface
//
// The UI and the one-shot CLI commands drive playback through [Player]: connect, play a URI, pause, resume, seek and
// subscribe to state events. Events carry the wall-clock time they were received so the playback mirror can project
// the position between them.
//
// # Spotify Implementation
//
// [SpotifyPlayer] uses the Spotify Web API through zmb3/spotify. OAuth2 tokens are refreshed automatically and every
// refreshed token is handed to a callback so it can be persisted.
//
// The Web API has no push channel, so [SpotifyPlayer.Subscribe] polls the player state at a rate limited interval
// and emits an event only when the state diverges from the local projection.
//
// # Demo Implementation
//
// [DemoPlayer] simulates an always connected premium account with a local clock. It backs the --demo flag and the
// tests.
//
// # Error Handling
//
// Players use typed errors from shared package:
//   - [shared.ErrNotAuthenticated] : no token, or the token was rejected
//   - [shared.ErrNotConnected] : Connect() not called or the session dropped
//   - [shared.ErrPremiumRequired] : the account cannot control playback
//   - [shared.ErrNoActiveDevice] : no Spotify device is available to play on
//   - [shared.ErrPlaybackFailed] : any other failed playback request
package services
