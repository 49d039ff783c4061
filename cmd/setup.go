package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/mica/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes the embedded example config to the --config path.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := r.configPathOrDefault()

	if _, err := os.Stat(path); err == nil {
		if !cmd.Bool("force") {
			r.logger.Info("config file already exists", "path", path)
			return r.writePlain("✓ Config already exists at %s (use --force to overwrite)\n", path)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing config: %w", err)
		}
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return err
	}
	r.config = config
	r.logger.Info("config file created", "path", path)

	r.writePlain("✓ Config written to %s\n", path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Create an app at https://developer.spotify.com/dashboard with redirect URI %s\n", config.Credentials.Spotify.RedirectURI)
	r.writePlain("2. Set credentials.spotify.client_id and client_secret in %s\n", path)
	r.writePlain("3. Run 'mica auth' to log in, then 'mica tui'\n")
	return nil
}
