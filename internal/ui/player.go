package ui

import (
	"fmt"
	"strings"

	"github.com/desertthunder/mica/internal/playback"
	"github.com/desertthunder/mica/internal/shared"
)

const (
	glyphPlaying = "▶"
	glyphPaused  = "⏸"
)

// renderPlayer draws the now playing bar, or nothing before the first play.
//
// While seeking the labels and bar follow the pending position instead of the projection.
func (m *Model) renderPlayer() string {
	if !m.mirror.Loaded() {
		return ""
	}

	now := m.now()
	snap := m.mirror.Snapshot()
	position := m.mirror.Position(now)
	fraction := playback.Fraction(snap, now)
	if m.seeking {
		position = m.pending
		fraction = 0
		if snap.Duration > 0 {
			fraction = float64(m.pending) / float64(snap.Duration)
		}
	}

	glyph := glyphPaused
	if m.mirror.Playing() {
		glyph = glyphPlaying
	}

	label := m.mirror.Track()
	if np := m.browser.Current(); np != nil {
		label = np.Selection.Language.Flag() + " " + np.Label()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", styles.ok.Render(glyph), label)
	fmt.Fprintf(&b, "%s / %s  %s",
		shared.FormatClock(position),
		shared.FormatClock(snap.Duration),
		m.progress.ViewAs(fraction),
	)
	if m.seeking {
		b.WriteString("  " + styles.warn.Render("seek "+shared.FormatClock(m.pending)))
	}
	return b.String()
}
