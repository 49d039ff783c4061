package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mica/internal/models"
	"github.com/desertthunder/mica/internal/services"
	"github.com/desertthunder/mica/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// PlayerFactory builds the player used by playback commands.
type PlayerFactory func(r *Runner) (services.Player, error)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	catalog    *models.Catalog
	newPlayer  PlayerFactory
	logger     *log.Logger
	output     io.Writer
	open       func(string) error
	mu         sync.Mutex
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Catalog    *models.Catalog
	NewPlayer  PlayerFactory
	Logger     *log.Logger
	Output     io.Writer
	Open       func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.NewPlayer == nil {
		opts.NewPlayer = spotifyPlayer
	}
	if opts.Open == nil {
		opts.Open = shared.OpenBrowser
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		catalog:    opts.Catalog,
		newPlayer:  opts.NewPlayer,
		logger:     opts.Logger,
		output:     opts.Output,
		open:       opts.Open,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, catalogCommand,
		playCommand, pauseCommand, resumeCommand, seekCommand, statusCommand,
		tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the configuration named by --config and applies --log-level.
//
// A missing file is not an error: the embedded defaults are used so setup can run.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.configPath = cmd.String("config")

	config, err := shared.LoadConfig(r.configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
	case err != nil:
		return ctx, err
	default:
		r.config = config
	}

	level := r.config.Log.Level
	if override := cmd.String("log-level"); override != "" {
		level = override
	}
	if level != "" {
		if err := shared.SetLogLevel(r.logger, level); err != nil {
			return ctx, err
		}
	}
	return ctx, nil
}

// SetLogger replaces the logger, e.g. with a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Catalog returns the configured catalog, loading it on first use.
func (r *Runner) Catalog() (*models.Catalog, error) {
	if r.catalog != nil {
		return r.catalog, nil
	}
	c, err := models.LoadCatalog(r.config.Catalog.Path)
	if err != nil {
		return nil, err
	}
	r.catalog = c
	return c, nil
}

// spotifyPlayer is the default [PlayerFactory]. Refreshed tokens are written back to the config file.
func spotifyPlayer(r *Runner) (services.Player, error) {
	creds := r.config.Credentials.Spotify
	if !creds.HasClient() {
		return nil, fmt.Errorf("%w: set client_id and client_secret in %s", shared.ErrMissingCredentials, r.configPathOrDefault())
	}

	player, err := services.NewSpotifyPlayer(services.SpotifyOptions{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURI:  creds.RedirectURI,
		DeviceID:     r.config.Player.DeviceID,
		PollInterval: r.config.Player.Poll(),
		Logger:       r.logger,
	})
	if err != nil {
		return nil, err
	}

	player.SetToken(creds.Token())
	player.SetTokenRefreshCallback(func(token *oauth2.Token) {
		if err := r.saveTokens(token); err != nil {
			r.logger.Warn("failed to persist refreshed token", "error", err)
			return
		}
		r.logger.Debug("refreshed token saved", "path", r.configPath)
	})
	return player, nil
}

func (r *Runner) configPathOrDefault() string {
	if r.configPath == "" {
		return "config.toml"
	}
	return r.configPath
}

// saveTokens stores token in the config and, when a path is known, writes the file.
func (r *Runner) saveTokens(token *oauth2.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.config == nil {
		return fmt.Errorf("%w: config is nil", shared.ErrMissingConfig)
	}
	if err := r.config.Credentials.Spotify.Update(token); err != nil {
		return fmt.Errorf("failed to update spotify configuration: %w", err)
	}
	if r.configPath == "" {
		return nil
	}
	if err := shared.SaveConfig(r.configPath, r.config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// connect builds the player and connects it. Callers must Disconnect.
func (r *Runner) connect(ctx context.Context) (services.Player, error) {
	player, err := r.newPlayer(r)
	if err != nil {
		return nil, err
	}
	if err := player.Connect(ctx); err != nil {
		return nil, err
	}
	return player, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
