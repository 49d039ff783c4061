package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	spotifyGreen = "#1DB954"
	accent       = "#7D56F4"
	errorRed     = "#FF5F5F"
	warnOrange   = "#FFA500"
	muted        = "#626262"
	glowGold     = "#FFD75F"
)

var styles = NewPalette(accent, spotifyGreen, errorRed, warnOrange, muted)

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title   lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	help    lipgloss.Style
	group   lipgloss.Style
	dim     lipgloss.Style
	playing lipgloss.Style
	glow    lipgloss.Style
	cursor  lipgloss.Style
	banner  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:   NewBold(t).MarginBottom(1),
		ok:      NewBold(s),
		err:     NewBold(e),
		warn:    NewStyle(w),
		help:    NewEm(h),
		group:   NewBold(t),
		dim:     NewStyle(h).Faint(true),
		playing: NewBold(s),
		glow:    NewBold(glowGold),
		cursor:  lipgloss.NewStyle().Reverse(true),
		banner:  NewBold("#FFFFFF").Background(lipgloss.Color(e)).Padding(0, 1),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
