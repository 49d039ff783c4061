package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mica/internal/shared"
	"golang.org/x/oauth2"
)

// DefaultTimeout bounds how long a [Flow] waits for the user to approve access.
const DefaultTimeout = 2 * time.Minute

// Flow runs one authorization code exchange over a temporary local server.
type Flow struct {
	Config  *oauth2.Config
	Addr    string
	Timeout time.Duration
	Logger  *log.Logger

	// Open receives the authorization URL, typically [shared.OpenBrowser].
	Open func(url string) error

	// Listener replaces listening on Addr when set.
	Listener net.Listener
}

// AuthURL builds the authorization URL for state.
func (f *Flow) AuthURL(state string) string {
	return f.Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Run serves the callback until a token arrives, ctx ends or the timeout elapses.
func (f *Flow) Run(ctx context.Context) (*oauth2.Token, error) {
	if f.Config == nil {
		return nil, fmt.Errorf("%w: missing oauth2 config", shared.ErrInvalidConfig)
	}
	logger := f.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ln := f.Listener
	if ln == nil {
		var err error
		if ln, err = net.Listen("tcp", f.Addr); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
		}
	}

	state := shared.GenerateID()
	handler := NewOAuthHandler(f.Config, state)
	router := NewBasicRouter()
	router.Use(Logging(logger))
	router.Handler(handler)

	srv := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening for oauth callback", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("error shutting down server", "error", err)
		}
	}()

	if f.Open != nil {
		if err := f.Open(f.AuthURL(state)); err != nil {
			logger.Warn("failed to open browser", "error", err)
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-handler.Result():
		if result.Err != nil {
			return nil, result.Err
		}
		if result.Token == nil {
			return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
		}
		return result.Token, nil
	case err := <-serveErr:
		return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	case <-timer.C:
		return nil, fmt.Errorf("%w: authorization timed out after %s", shared.ErrTimeout, timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
