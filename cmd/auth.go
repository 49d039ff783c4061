package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mica/internal/server"
	"github.com/desertthunder/mica/internal/services"
	"github.com/desertthunder/mica/internal/shared"
	"github.com/urfave/cli/v3"
)

// Auth performs the OAuth2 authorization code flow for Spotify.
//
// Starts a local HTTP server, opens the browser for user authorization and saves the exchanged tokens to the config.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	creds := r.config.Credentials.Spotify
	if !creds.HasClient() {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set in %s", shared.ErrMissingCredentials, r.configPathOrDefault())
	}

	player, err := services.NewSpotifyPlayer(services.SpotifyOptions{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURI:  creds.RedirectURI,
		Logger:       r.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create Spotify player: %w", err)
	}

	noBrowser := cmd.Bool("no-browser")
	flow := &server.Flow{
		Config:  player.OAuthConfig(),
		Addr:    r.config.Server.Addr(),
		Timeout: cmd.Duration("timeout"),
		Logger:  r.logger,
		Open: func(url string) error {
			if noBrowser {
				return r.writePlain("Open this URL in your browser:\n%s\n\n", url)
			}
			r.writePlain("→ Opening browser for Spotify authorization...\n")
			if err := r.open(url); err != nil {
				r.writePlainln("⚠ Could not open browser automatically.")
				r.writePlain("Please open this URL in your browser:\n%s\n\n", url)
				return err
			}
			return nil
		},
	}

	r.writePlain("→ Waiting for authorization (%s timeout)...\n", flow.Timeout)
	token, err := flow.Run(ctx)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	if err := r.saveTokens(token); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Tokens saved to %s\n\n", r.configPathOrDefault())
	r.writePlain("You can now use: mica tui\n")
	return nil
}
