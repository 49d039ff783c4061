package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/mica/internal/shared"
	"golang.org/x/oauth2"
)

// fakeSpotify is a minimal Web API double recording playback requests.
type fakeSpotify struct {
	mu          sync.Mutex
	product     string
	state       string
	stateStatus int
	playStatus  int
	requests    []string
	bodies      []string
}

func newFakeSpotify() *fakeSpotify {
	return &fakeSpotify{
		product:     "premium",
		stateStatus: http.StatusOK,
		playStatus:  http.StatusNoContent,
		state:       playerStateJSON("spotify:track:1", true, 1000, 180000),
	}
}

func playerStateJSON(uri string, playing bool, progress, duration int) string {
	payload := map[string]any{
		"timestamp":   0,
		"progress_ms": progress,
		"is_playing":  playing,
		"device":      map[string]any{"id": "dev", "name": "Laptop", "type": "Computer", "volume_percent": 50},
		"item": map[string]any{
			"id":          strings.TrimPrefix(uri, "spotify:track:"),
			"name":        "Song",
			"uri":         uri,
			"duration_ms": duration,
		},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func (f *fakeSpotify) set(fn func(f *fakeSpotify)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeSpotify) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"status": status, "message": message}})
}

func (f *fakeSpotify) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.bodies = append(f.bodies, string(body))

	switch {
	case r.URL.Path == "/me":
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "user1", "display_name": "User", "product": f.product})
	case r.URL.Path == "/me/player" && r.Method == http.MethodGet:
		if f.stateStatus != http.StatusOK {
			writeAPIError(w, f.stateStatus, "state unavailable")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, f.state)
	case strings.HasPrefix(r.URL.Path, "/me/player/"):
		if f.playStatus >= 400 {
			writeAPIError(w, f.playStatus, "Player command failed")
			return
		}
		w.WriteHeader(f.playStatus)
	default:
		writeAPIError(w, http.StatusNotFound, "unknown endpoint")
	}
}

func newTestSpotifyPlayer(t *testing.T, fake *fakeSpotify) *SpotifyPlayer {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	player, err := NewSpotifyPlayer(SpotifyOptions{
		HTTPClient:   srv.Client(),
		BaseURL:      srv.URL + "/",
		PollInterval: 10 * time.Millisecond,
		Logger:       shared.NewLogger(io.Discard),
	})
	if err != nil {
		t.Fatalf("failed to create player: %v", err)
	}
	t.Cleanup(player.Disconnect)
	return player
}

func TestSpotifyPlayer(t *testing.T) {
	t.Run("NewSpotifyPlayer", func(t *testing.T) {
		t.Run("With Valid Credentials", func(t *testing.T) {
			p, err := NewSpotifyPlayer(SpotifyOptions{ClientID: "id", ClientSecret: "secret"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if p.Name() != "Spotify" {
				t.Errorf("expected player name 'Spotify', got %s", p.Name())
			}
			if p.OAuthConfig().RedirectURL != DefaultRedirectURI {
				t.Errorf("expected default redirect URI, got %s", p.OAuthConfig().RedirectURL)
			}
		})

		t.Run("Missing Client ID", func(t *testing.T) {
			_, err := NewSpotifyPlayer(SpotifyOptions{ClientSecret: "secret"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Missing Client Secret", func(t *testing.T) {
			_, err := NewSpotifyPlayer(SpotifyOptions{ClientID: "id"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	})

	t.Run("AuthURL", func(t *testing.T) {
		p, err := NewSpotifyPlayer(SpotifyOptions{ClientID: "test_client_id", ClientSecret: "secret"})
		if err != nil {
			t.Fatalf("failed to create player: %v", err)
		}

		authURL := p.AuthURL("test_state")
		if !strings.Contains(authURL, "accounts.spotify.com") {
			t.Error("auth URL should contain Spotify domain")
		}
		if !strings.Contains(authURL, "test_client_id") {
			t.Error("auth URL should contain client_id")
		}
		if !strings.Contains(authURL, "test_state") {
			t.Error("auth URL should contain state")
		}
		if !strings.Contains(authURL, "user-modify-playback-state") {
			t.Error("auth URL should request playback scope")
		}
	})

	t.Run("Connect without token", func(t *testing.T) {
		p, err := NewSpotifyPlayer(SpotifyOptions{ClientID: "id", ClientSecret: "secret"})
		if err != nil {
			t.Fatalf("failed to create player: %v", err)
		}
		if err := p.Connect(context.Background()); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
		if p.Connected() {
			t.Error("player should not be connected")
		}
	})

	t.Run("requests before Connect", func(t *testing.T) {
		p := newTestSpotifyPlayer(t, newFakeSpotify())
		if err := p.Play(context.Background(), "spotify:track:1"); !errors.Is(err, shared.ErrNotConnected) {
			t.Errorf("expected ErrNotConnected, got %v", err)
		}
		if _, err := p.Subscribe(context.Background()); !errors.Is(err, shared.ErrNotConnected) {
			t.Errorf("expected ErrNotConnected, got %v", err)
		}
	})

	t.Run("Connect and premium", func(t *testing.T) {
		fake := newFakeSpotify()
		p := newTestSpotifyPlayer(t, fake)
		ctx := context.Background()

		if err := p.Connect(ctx); err != nil {
			t.Fatalf("connect failed: %v", err)
		}
		if !p.Connected() {
			t.Error("expected connected")
		}
		premium, err := p.Premium(ctx)
		if err != nil || !premium {
			t.Errorf("expected premium, got %v (%v)", premium, err)
		}

		p.Disconnect()
		fake.set(func(f *fakeSpotify) { f.product = "free" })
		if err := p.Connect(ctx); err != nil {
			t.Fatalf("reconnect failed: %v", err)
		}
		if premium, _ := p.Premium(ctx); premium {
			t.Error("free account should not be premium")
		}
	})

	t.Run("playback requests", func(t *testing.T) {
		fake := newFakeSpotify()
		p := newTestSpotifyPlayer(t, fake)
		ctx := context.Background()
		if err := p.Connect(ctx); err != nil {
			t.Fatalf("connect failed: %v", err)
		}

		if err := p.Play(ctx, "spotify:track:abc"); err != nil {
			t.Errorf("play failed: %v", err)
		}
		if err := p.Pause(ctx); err != nil {
			t.Errorf("pause failed: %v", err)
		}
		if err := p.Resume(ctx); err != nil {
			t.Errorf("resume failed: %v", err)
		}
		if err := p.Seek(ctx, 90*time.Second); err != nil {
			t.Errorf("seek failed: %v", err)
		}

		got := strings.Join(fake.recorded(), "\n")
		for _, want := range []string{"PUT /me/player/play", "PUT /me/player/pause", "PUT /me/player/seek"} {
			if !strings.Contains(got, want) {
				t.Errorf("expected request %q in\n%s", want, got)
			}
		}

		fake.mu.Lock()
		bodies := strings.Join(fake.bodies, "\n")
		fake.mu.Unlock()
		if !strings.Contains(bodies, "spotify:track:abc") {
			t.Error("play request should carry the track uri")
		}
	})

	t.Run("playback errors are classified", func(t *testing.T) {
		tc := []struct {
			status int
			want   error
		}{
			{status: http.StatusForbidden, want: shared.ErrPremiumRequired},
			{status: http.StatusNotFound, want: shared.ErrNoActiveDevice},
			{status: http.StatusUnauthorized, want: shared.ErrNotAuthenticated},
			{status: http.StatusBadGateway, want: shared.ErrPlaybackFailed},
		}

		for _, tt := range tc {
			t.Run(http.StatusText(tt.status), func(t *testing.T) {
				fake := newFakeSpotify()
				p := newTestSpotifyPlayer(t, fake)
				if err := p.Connect(context.Background()); err != nil {
					t.Fatalf("connect failed: %v", err)
				}
				fake.set(func(f *fakeSpotify) { f.playStatus = tt.status })

				if err := p.Play(context.Background(), "spotify:track:1"); !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("State", func(t *testing.T) {
		p := newTestSpotifyPlayer(t, newFakeSpotify())
		if err := p.Connect(context.Background()); err != nil {
			t.Fatalf("connect failed: %v", err)
		}

		st, err := p.State(context.Background())
		if err != nil {
			t.Fatalf("state failed: %v", err)
		}
		if st.TrackURI != "spotify:track:1" || st.Paused {
			t.Errorf("unexpected state %+v", st)
		}
		if st.Position != time.Second || st.Duration != 3*time.Minute {
			t.Errorf("unexpected position %v / %v", st.Position, st.Duration)
		}
	})
}

func TestSpotifySubscribe(t *testing.T) {
	t.Run("emits initial and changed state", func(t *testing.T) {
		fake := newFakeSpotify()
		p := newTestSpotifyPlayer(t, fake)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := p.Connect(ctx); err != nil {
			t.Fatalf("connect failed: %v", err)
		}
		events, err := p.Subscribe(ctx)
		if err != nil {
			t.Fatalf("subscribe failed: %v", err)
		}

		first := nextEvent(t, events)
		if first.Kind != EventState || first.State.TrackURI != "spotify:track:1" {
			t.Fatalf("unexpected first event %+v", first)
		}

		fake.set(func(f *fakeSpotify) { f.state = playerStateJSON("spotify:track:2", false, 0, 200000) })
		second := nextEvent(t, events)
		if second.State.TrackURI != "spotify:track:2" || !second.State.Paused {
			t.Errorf("unexpected second event %+v", second)
		}

		cancel()
		for range events {
		}
	})

	t.Run("repeated failures disconnect", func(t *testing.T) {
		fake := newFakeSpotify()
		p := newTestSpotifyPlayer(t, fake)
		if err := p.Connect(context.Background()); err != nil {
			t.Fatalf("connect failed: %v", err)
		}
		fake.set(func(f *fakeSpotify) { f.stateStatus = http.StatusInternalServerError })

		events, err := p.Subscribe(context.Background())
		if err != nil {
			t.Fatalf("subscribe failed: %v", err)
		}

		ev := nextEvent(t, events)
		if ev.Kind != EventDisconnected {
			t.Fatalf("expected disconnect event, got %+v", ev)
		}
		if _, ok := <-events; ok {
			t.Error("channel should close after disconnect")
		}
		if p.Connected() {
			t.Error("player should be disconnected")
		}
	})
}

func nextEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		if !ok {
			t.Fatal("event channel closed")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

type mockTokenSource struct {
	mu    sync.Mutex
	token *oauth2.Token
	err   error
}

func (m *mockTokenSource) Token() (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.err
}

func TestRefreshableTokenSource(t *testing.T) {
	t.Run("calls callback only when token changes", func(t *testing.T) {
		var captured []string
		mock := &mockTokenSource{token: &oauth2.Token{AccessToken: "token1"}}
		source := &refreshableTokenSource{
			source:   mock,
			last:     "token1",
			callback: func(token *oauth2.Token) { captured = append(captured, token.AccessToken) },
		}

		if _, err := source.Token(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(captured) != 0 {
			t.Errorf("unchanged token should not trigger callback, got %v", captured)
		}

		mock.token = &oauth2.Token{AccessToken: "token2"}
		token, err := source.Token()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token.AccessToken != "token2" {
			t.Errorf("expected token2, got %s", token.AccessToken)
		}
		if len(captured) != 1 || captured[0] != "token2" {
			t.Errorf("expected one callback with token2, got %v", captured)
		}
	})

	t.Run("nil callback", func(t *testing.T) {
		source := &refreshableTokenSource{source: &mockTokenSource{token: &oauth2.Token{AccessToken: "x"}}}
		if _, err := source.Token(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("source error", func(t *testing.T) {
		source := &refreshableTokenSource{source: &mockTokenSource{err: errors.New("refresh rejected")}}
		if _, err := source.Token(); !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})
}

func TestPlayerInterface(t *testing.T) {
	var _ Player = (*SpotifyPlayer)(nil)
	var _ Player = (*DemoPlayer)(nil)
}
