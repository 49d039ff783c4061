package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/mica/internal/browse"
	"github.com/desertthunder/mica/internal/models"
)

const (
	indicatorCollapsed = "▸"
	indicatorExpanded  = "▾"
	playingMarker      = "♪"
	glowMarker         = "✦"
	missingTitle       = "—"
	cellWidth          = 28
)

// renderRows draws the reconciled rows. The cursor row is marked and its selected column reversed.
func renderRows(views []browse.RowView, cursor browse.Cursor) string {
	nameWidth := 0
	for _, v := range views {
		if v.Kind == browse.ArtistRow {
			nameWidth = max(nameWidth, lipgloss.Width(v.Artist.Name))
		}
	}

	var b strings.Builder
	for i, v := range views {
		selected := i == cursor.Row
		prefix := "  "
		if selected {
			prefix = "› "
		}

		if v.Kind == browse.GroupRow {
			b.WriteString(prefix + renderHeader(v.Header, selected))
		} else {
			b.WriteString(prefix + renderArtist(v, nameWidth, selected, cursor.Column))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderHeader(h browse.Header, selected bool) string {
	indicator := indicatorCollapsed
	if h.Expanded {
		indicator = indicatorExpanded
	}

	line := fmt.Sprintf("%s %s (%d)", indicator, h.Name, h.Count)
	if h.Playing {
		line += " " + playingMarker
	}
	if selected {
		return styles.cursor.Inherit(styles.group).Render(line)
	}
	return styles.group.Render(line)
}

func renderArtist(v browse.RowView, nameWidth int, selected bool, column models.Language) string {
	name := lipgloss.NewStyle().Width(nameWidth + 2).Render(v.Artist.Name)

	cells := make([]string, 0, len(v.Cells))
	for _, c := range v.Cells {
		cells = append(cells, renderCell(c, selected && c.Language == column))
	}
	return "  " + name + strings.Join(cells, "")
}

// renderCell maps a [browse.CellState] onto terminal styling.
//
// The enlarged flag of the playing cell becomes a glow marker since terminals cannot scale glyphs.
func renderCell(c browse.CellState, focused bool) string {
	title := c.Title
	if !c.Available {
		title = missingTitle
	}

	flag := c.Flag
	if c.FlagScale > browse.DefaultFlagScale {
		flag = styles.glow.Render(glowMarker) + flag
	}

	text := flag + " " + truncate(title, cellWidth-4)

	style := lipgloss.NewStyle()
	switch {
	case c.Dimmed:
		style = styles.dim
	case c.Highlight:
		style = styles.playing
	}
	if focused {
		style = style.Inherit(styles.cursor).Reverse(true)
	}
	return lipgloss.NewStyle().Width(cellWidth).Render(style.Render(text))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
