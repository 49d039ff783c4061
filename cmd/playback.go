package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/mica/internal/models"
	"github.com/desertthunder/mica/internal/playback"
	"github.com/desertthunder/mica/internal/services"
	"github.com/desertthunder/mica/internal/shared"
	"github.com/urfave/cli/v3"
)

// withPlayer connects, verifies premium and runs fn before disconnecting.
func (r *Runner) withPlayer(ctx context.Context, fn func(services.Player) error) error {
	player, err := r.connect(ctx)
	if err != nil {
		return err
	}
	defer player.Disconnect()

	premium, err := player.Premium(ctx)
	if err != nil {
		return err
	}
	if !premium {
		return fmt.Errorf("%w: playback control needs a premium account", shared.ErrPremiumRequired)
	}
	return fn(player)
}

// Play resolves <group> <artist> --lang in the catalog and starts the song.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	group, artist := cmd.StringArg("group"), cmd.StringArg("artist")
	if group == "" || artist == "" {
		return fmt.Errorf("%w: usage: mica play <group> <artist> [--lang es|en]", shared.ErrMissingArgument)
	}

	lang, err := models.ParseLanguage(cmd.String("lang"))
	if err != nil {
		return err
	}

	catalog, err := r.Catalog()
	if err != nil {
		return err
	}
	np, err := catalog.Find(group, artist, lang)
	if err != nil {
		return err
	}
	if np.Song == nil {
		return fmt.Errorf("%w: %s has no %s song", shared.ErrUnavailable, np.Artist.Name, lang)
	}

	return r.withPlayer(ctx, func(p services.Player) error {
		r.logger.Info("play", "uri", np.Song.URI, "artist", np.Artist.Name, "lang", lang)
		if err := p.Play(ctx, np.Song.URI); err != nil {
			return err
		}
		return r.writePlain("▶ %s %s\n", lang.Flag(), np.Label())
	})
}

// Pause pauses the active device.
func (r *Runner) Pause(ctx context.Context, cmd *cli.Command) error {
	return r.withPlayer(ctx, func(p services.Player) error {
		if err := p.Pause(ctx); err != nil {
			return err
		}
		return r.writePlain("⏸ Paused\n")
	})
}

// Resume resumes the active device.
func (r *Runner) Resume(ctx context.Context, cmd *cli.Command) error {
	return r.withPlayer(ctx, func(p services.Player) error {
		if err := p.Resume(ctx); err != nil {
			return err
		}
		return r.writePlain("▶ Resumed\n")
	})
}

// Seek moves the current track to <m:ss>.
func (r *Runner) Seek(ctx context.Context, cmd *cli.Command) error {
	arg := cmd.StringArg("position")
	if arg == "" {
		return fmt.Errorf("%w: usage: mica seek <m:ss>", shared.ErrMissingArgument)
	}
	position, err := shared.ParseClock(arg)
	if err != nil {
		return err
	}

	return r.withPlayer(ctx, func(p services.Player) error {
		if err := p.Seek(ctx, position); err != nil {
			return err
		}
		return r.writePlain("→ %s\n", shared.FormatClock(position))
	})
}

// StatusReport is the JSON shape of the status command.
type StatusReport struct {
	Connected bool    `json:"connected"`
	Premium   bool    `json:"premium"`
	Playing   bool    `json:"playing"`
	TrackURI  string  `json:"trackUri,omitempty"`
	Title     string  `json:"title,omitempty"`
	Artist    string  `json:"artist,omitempty"`
	Language  string  `json:"language,omitempty"`
	Position  string  `json:"position"`
	Duration  string  `json:"duration"`
	Progress  float64 `json:"progress"`
}

// Status prints the projected playback position of the active device.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	player, err := r.connect(ctx)
	if err != nil {
		return err
	}
	defer player.Disconnect()

	premium, err := player.Premium(ctx)
	if err != nil {
		return err
	}
	state, err := player.State(ctx)
	if err != nil {
		return err
	}

	report := r.statusReport(*state, time.Now())
	report.Connected = true
	report.Premium = premium

	if cmd.Bool("json") {
		return r.writeJSON(report, true)
	}

	if report.TrackURI == "" {
		return r.writePlain("Nothing playing\n")
	}

	glyph := "⏸"
	if report.Playing {
		glyph = "▶"
	}
	label := report.TrackURI
	if report.Title != "" {
		label = fmt.Sprintf("%s · %s", report.Title, report.Artist)
	}
	r.writePlain("%s %s\n", glyph, label)
	r.writePlain("  %s / %s (%.0f%%)\n", report.Position, report.Duration, report.Progress*100)
	if !premium {
		r.writePlain("  Spotify Premium required for playback control\n")
	}
	return nil
}

// statusReport projects state to now and resolves the track against the catalog.
func (r *Runner) statusReport(state playback.State, now time.Time) StatusReport {
	var mirror playback.Mirror
	mirror.Apply(state, now)

	report := StatusReport{
		Playing:  mirror.Playing(),
		TrackURI: state.TrackURI,
		Position: shared.FormatClock(mirror.Position(now)),
		Duration: shared.FormatClock(mirror.Duration()),
		Progress: playback.Fraction(mirror.Snapshot(), now),
	}

	if catalog, err := r.Catalog(); err == nil {
		if np, ok := catalog.FindURI(state.TrackURI); ok {
			report.Title = np.Song.Title
			report.Artist = np.Artist.Name
			report.Language = np.Selection.Language.String()
		}
	}
	return report
}
