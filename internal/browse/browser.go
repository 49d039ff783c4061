package browse

import (
	"fmt"

	"github.com/desertthunder/mica/internal/models"
	"github.com/desertthunder/mica/internal/shared"
)

// Cursor points at a row and, on artist rows, a language column.
type Cursor struct {
	Row    int
	Column models.Language
}

// Browser holds the navigable state of the nested list.
type Browser struct {
	catalog *models.Catalog
	rows    []Row
	cursor  Cursor
	current *models.NowPlaying
}

// New creates a Browser over c with every group in its current expanded state.
func New(c *models.Catalog) *Browser {
	b := &Browser{catalog: c}
	b.rows = Rows(c)
	return b
}

// Catalog returns the browsed catalog.
func (b *Browser) Catalog() *models.Catalog { return b.catalog }

// Rows returns the visible rows.
func (b *Browser) Rows() []Row { return b.rows }

// Cursor returns the cursor position.
func (b *Browser) Cursor() Cursor { return b.cursor }

// Current returns the playing cell or nil.
func (b *Browser) Current() *models.NowPlaying { return b.current }

// SetCurrent replaces the playing cell; nil clears it.
func (b *Browser) SetCurrent(np *models.NowPlaying) {
	if np == nil || np.Song == nil {
		b.current = nil
		return
	}
	cp := *np
	b.current = &cp
}

// View reconciles the visible rows against the playing cell.
func (b *Browser) View() []RowView {
	return Reconcile(b.catalog, b.rows, b.current)
}

// Up moves the cursor one row up.
func (b *Browser) Up() {
	if b.cursor.Row > 0 {
		b.cursor.Row--
	}
}

// Down moves the cursor one row down.
func (b *Browser) Down() {
	if b.cursor.Row < len(b.rows)-1 {
		b.cursor.Row++
	}
}

// Left selects the Spanish column.
func (b *Browser) Left() { b.cursor.Column = models.Spanish }

// Right selects the English column.
func (b *Browser) Right() { b.cursor.Column = models.English }

// SetCursor moves the cursor to row, clamped to the visible rows.
func (b *Browser) SetCursor(row int) {
	switch {
	case len(b.rows) == 0:
		row = 0
	case row < 0:
		row = 0
	case row >= len(b.rows):
		row = len(b.rows) - 1
	}
	b.cursor.Row = row
}

// Row returns the row under the cursor.
func (b *Browser) Row() (Row, bool) {
	if b.cursor.Row < 0 || b.cursor.Row >= len(b.rows) {
		return Row{}, false
	}
	return b.rows[b.cursor.Row], true
}

// Toggle flips the group under the cursor. On an artist row the parent group collapses.
//
// The cursor is left on the group header.
func (b *Browser) Toggle() {
	r, ok := b.Row()
	if !ok {
		return
	}
	b.ToggleGroup(r.Group)
}

// ToggleGroup flips the expanded flag of group gi and rebuilds the rows.
func (b *Browser) ToggleGroup(gi int) {
	if gi < 0 || gi >= len(b.catalog.Groups) {
		return
	}
	g := &b.catalog.Groups[gi]
	g.Expanded = !g.Expanded
	b.rows = Rows(b.catalog)
	b.SetCursor(headerIndex(b.rows, gi))
}

// Selection returns the cell under the cursor. ok is false on group rows.
func (b *Browser) Selection() (models.Selection, bool) {
	r, ok := b.Row()
	if !ok || r.Kind != ArtistRow {
		return models.Selection{}, false
	}
	return models.Selection{Group: r.Group, Artist: r.Artist, Language: b.cursor.Column}, true
}

// Activate resolves the cell under the cursor for playback.
//
// Empty columns return [shared.ErrUnavailable]; group rows return [shared.ErrInvalidInput].
func (b *Browser) Activate() (models.NowPlaying, error) {
	sel, ok := b.Selection()
	if !ok {
		return models.NowPlaying{}, fmt.Errorf("%w: cursor is not on an artist", shared.ErrInvalidInput)
	}

	np, err := b.catalog.Resolve(sel)
	if err != nil {
		return models.NowPlaying{}, err
	}

	if cell := Cell(np.Artist, sel, b.current); !cell.Clickable {
		return models.NowPlaying{}, fmt.Errorf("%w: %s has no %s song", shared.ErrUnavailable, np.Artist.Name, sel.Language)
	}
	return np, nil
}

// Reveal expands the group holding sel and moves the cursor onto it.
func (b *Browser) Reveal(sel models.Selection) {
	if sel.Group < 0 || sel.Group >= len(b.catalog.Groups) {
		return
	}
	if !b.catalog.Groups[sel.Group].Expanded {
		b.ToggleGroup(sel.Group)
	}
	for i, r := range b.rows {
		if r.Kind == ArtistRow && r.Group == sel.Group && r.Artist == sel.Artist {
			b.cursor = Cursor{Row: i, Column: sel.Language}
			return
		}
	}
}
