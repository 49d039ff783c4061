// Spotify Web API implementation of [Player]
//
// Endpoints are documented at https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mica/internal/playback"
	"github.com/desertthunder/mica/internal/shared"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// DefaultRedirectURI is used when the configuration omits one.
	DefaultRedirectURI = "http://127.0.0.1:3000/callback"

	// driftTolerance is how far a polled position may stray from the projection before it is reported.
	driftTolerance = 1500 * time.Millisecond

	// maxPollFailures is the number of consecutive failed polls after which the session is considered lost.
	maxPollFailures = 3

	premiumProduct = "premium"
)

// Scopes lists the OAuth2 scopes needed to read and control playback.
var Scopes = []string{
	spotifyauth.ScopeUserReadPrivate,
	spotifyauth.ScopeUserReadPlaybackState,
	spotifyauth.ScopeUserModifyPlaybackState,
	spotifyauth.ScopeUserReadCurrentlyPlaying,
}

// SpotifyOptions configures a [SpotifyPlayer].
type SpotifyOptions struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	DeviceID     string
	PollInterval time.Duration
	Logger       *log.Logger
	Clock        Clock

	// HTTPClient bypasses OAuth2 entirely when set. BaseURL overrides the API root; both exist for tests.
	HTTPClient *http.Client
	BaseURL    string
}

// SpotifyPlayer implements [Player] over the Spotify Web API.
type SpotifyPlayer struct {
	config         *oauth2.Config
	token          *oauth2.Token
	onTokenRefresh func(*oauth2.Token)
	opts           SpotifyOptions
	logger         *log.Logger
	now            Clock

	mu        sync.Mutex
	client    *spotify.Client
	connected bool
	premium   *bool
	cancel    context.CancelFunc
}

// NewSpotifyPlayer creates a Spotify player. Connect must be called before any playback request.
func NewSpotifyPlayer(opts SpotifyOptions) (*SpotifyPlayer, error) {
	if opts.HTTPClient == nil {
		if opts.ClientID == "" {
			return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
		}
		if opts.ClientSecret == "" {
			return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
		}
	}
	if opts.RedirectURI == "" {
		opts.RedirectURI = DefaultRedirectURI
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = shared.DefaultPollInterval
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	config := &oauth2.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		RedirectURL:  opts.RedirectURI,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyauth.AuthURL,
			TokenURL: spotifyauth.TokenURL,
		},
	}

	return &SpotifyPlayer{
		config: config,
		opts:   opts,
		logger: shared.WithLogger(opts.Logger, "player", "spotify"),
		now:    opts.Clock,
	}, nil
}

// Name returns "Spotify".
func (s *SpotifyPlayer) Name() string { return "Spotify" }

// OAuthConfig exposes the OAuth2 configuration for the authorization flow.
func (s *SpotifyPlayer) OAuthConfig() *oauth2.Config { return s.config }

// AuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyPlayer) AuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// SetToken installs a previously stored token.
func (s *SpotifyPlayer) SetToken(token *oauth2.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// SetTokenRefreshCallback registers fn to receive every new token issued by the refresh flow.
func (s *SpotifyPlayer) SetTokenRefreshCallback(fn func(*oauth2.Token)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTokenRefresh = fn
}

func (s *SpotifyPlayer) httpClient(ctx context.Context) (*http.Client, error) {
	if s.opts.HTTPClient != nil {
		return s.opts.HTTPClient, nil
	}
	if s.token == nil {
		return nil, fmt.Errorf("%w: run the auth command first", shared.ErrNotAuthenticated)
	}

	source := &refreshableTokenSource{
		source:   s.config.TokenSource(context.Background(), s.token),
		callback: s.onTokenRefresh,
		last:     s.token.AccessToken,
	}
	return oauth2.NewClient(context.WithoutCancel(ctx), source), nil
}

// Connect builds the API client and verifies the session by fetching the user profile.
func (s *SpotifyPlayer) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hc, err := s.httpClient(ctx)
	if err != nil {
		return err
	}

	var clientOpts []spotify.ClientOption
	if s.opts.BaseURL != "" {
		clientOpts = append(clientOpts, spotify.WithBaseURL(s.opts.BaseURL))
	}
	client := spotify.New(hc, clientOpts...)

	user, err := client.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAuthFailed, classify(err))
	}

	premium := user.Product == premiumProduct
	s.client = client
	s.premium = &premium
	s.connected = true
	s.logger.Info("connected", "user", user.ID, "product", user.Product)
	return nil
}

// Disconnect drops the session and stops any running subscription.
func (s *SpotifyPlayer) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disconnectLocked()
}

func (s *SpotifyPlayer) disconnectLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.connected = false
	s.client = nil
	s.premium = nil
}

// Connected reports whether Connect succeeded and the session has not dropped.
func (s *SpotifyPlayer) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Premium reports whether the connected user has a premium subscription.
func (s *SpotifyPlayer) Premium(ctx context.Context) (bool, error) {
	client, err := s.session()
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	cached := s.premium
	s.mu.Unlock()
	if cached != nil {
		return *cached, nil
	}

	user, err := client.CurrentUser(ctx)
	if err != nil {
		return false, classify(err)
	}
	premium := user.Product == premiumProduct

	s.mu.Lock()
	s.premium = &premium
	s.mu.Unlock()
	return premium, nil
}

func (s *SpotifyPlayer) session() (*spotify.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected || s.client == nil {
		return nil, shared.ErrNotConnected
	}
	return s.client, nil
}

func (s *SpotifyPlayer) playOptions() *spotify.PlayOptions {
	opts := &spotify.PlayOptions{}
	if s.opts.DeviceID != "" {
		id := spotify.ID(s.opts.DeviceID)
		opts.DeviceID = &id
	}
	return opts
}

// Play starts uri on the configured (or active) device.
func (s *SpotifyPlayer) Play(ctx context.Context, uri string) error {
	client, err := s.session()
	if err != nil {
		return err
	}

	opts := s.playOptions()
	opts.URIs = []spotify.URI{spotify.URI(uri)}
	if err := client.PlayOpt(ctx, opts); err != nil {
		return fmt.Errorf("failed to play %s: %w", uri, classify(err))
	}
	return nil
}

// Pause pauses playback.
func (s *SpotifyPlayer) Pause(ctx context.Context) error {
	client, err := s.session()
	if err != nil {
		return err
	}
	if err := client.PauseOpt(ctx, s.playOptions()); err != nil {
		return fmt.Errorf("failed to pause: %w", classify(err))
	}
	return nil
}

// Resume continues playback without replacing the queue.
func (s *SpotifyPlayer) Resume(ctx context.Context) error {
	client, err := s.session()
	if err != nil {
		return err
	}
	if err := client.PlayOpt(ctx, s.playOptions()); err != nil {
		return fmt.Errorf("failed to resume: %w", classify(err))
	}
	return nil
}

// Seek moves the position of the current track.
func (s *SpotifyPlayer) Seek(ctx context.Context, position time.Duration) error {
	client, err := s.session()
	if err != nil {
		return err
	}
	if position < 0 {
		position = 0
	}
	if err := client.SeekOpt(ctx, int(position/time.Millisecond), s.playOptions()); err != nil {
		return fmt.Errorf("failed to seek: %w", classify(err))
	}
	return nil
}

// State fetches the current player state. An idle player yields a paused, empty state.
func (s *SpotifyPlayer) State(ctx context.Context) (*playback.State, error) {
	client, err := s.session()
	if err != nil {
		return nil, err
	}

	ps, err := client.PlayerState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get player state: %w", classify(err))
	}
	return toState(ps), nil
}

func toState(ps *spotify.PlayerState) *playback.State {
	if ps == nil || ps.Item == nil {
		return &playback.State{Paused: true}
	}
	return &playback.State{
		TrackURI: string(ps.Item.URI),
		Paused:   !ps.Playing,
		Position: time.Duration(ps.Progress) * time.Millisecond,
		Duration: time.Duration(ps.Item.Duration) * time.Millisecond,
	}
}

// Subscribe polls the player state and emits an [EventState] whenever it diverges from the local projection.
//
// After repeated poll failures an [EventDisconnected] is sent, the session is dropped and the channel closes.
func (s *SpotifyPlayer) Subscribe(ctx context.Context) (<-chan Event, error) {
	if _, err := s.session(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	events := make(chan Event, 8)
	go s.poll(ctx, events)
	return events, nil
}

func (s *SpotifyPlayer) poll(ctx context.Context, events chan<- Event) {
	defer close(events)

	limiter := rate.NewLimiter(rate.Every(s.opts.PollInterval), 1)
	var (
		last     playback.Snapshot
		track    string
		seen     bool
		failures int
	)

	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		state, err := s.State(ctx)
		if errors.Is(err, shared.ErrNotConnected) || ctx.Err() != nil {
			return
		}
		if err != nil {
			failures++
			s.logger.Warn("poll failed", "attempt", failures, "error", err)
			if failures < maxPollFailures {
				continue
			}
			send(ctx, events, Event{Kind: EventDisconnected, ReceivedAt: s.now(), Err: err})
			s.Disconnect()
			return
		}
		failures = 0

		now := s.now()
		if seen && state.TrackURI == track && !playback.Diverged(last, *state, now, driftTolerance) {
			continue
		}

		last, track, seen = playback.Sample(*state, now), state.TrackURI, true

		s.logger.Debug("state changed", "track", state.TrackURI, "paused", state.Paused, "position", state.Position)
		if !send(ctx, events, Event{Kind: EventState, State: *state, ReceivedAt: now}) {
			return
		}
	}
}

func send(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// classify maps Web API errors onto the shared sentinel errors.
func classify(err error) error {
	var apiErr spotify.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %v", shared.ErrPlaybackFailed, err)
	}

	switch apiErr.Status {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", shared.ErrNotAuthenticated, apiErr.Message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", shared.ErrPremiumRequired, apiErr.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrNoActiveDevice, apiErr.Message)
	default:
		return fmt.Errorf("%w: status %d: %s", shared.ErrPlaybackFailed, apiErr.Status, apiErr.Message)
	}
}

// refreshableTokenSource wraps an [oauth2.TokenSource] and reports every new access token to callback.
type refreshableTokenSource struct {
	source   oauth2.TokenSource
	callback func(*oauth2.Token)
	mu       sync.Mutex
	last     string
}

func (r *refreshableTokenSource) Token() (*oauth2.Token, error) {
	token, err := r.source.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTokenExpired, err)
	}

	r.mu.Lock()
	changed := token.AccessToken != r.last
	r.last = token.AccessToken
	r.mu.Unlock()

	if changed && r.callback != nil {
		r.callback(token)
	}
	return token, nil
}
