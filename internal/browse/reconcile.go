package browse

import "github.com/desertthunder/mica/internal/models"

const (
	// DefaultFlagScale is the flag size of an idle cell.
	DefaultFlagScale = 1.0
	// PlayingFlagScale enlarges the flag of the playing cell.
	PlayingFlagScale = 1.2
)

// CellState is the visual state of one language column of an artist row.
type CellState struct {
	Language  models.Language
	Title     string
	Flag      string
	Available bool
	Clickable bool
	Highlight bool
	Glow      bool
	Dimmed    bool
	FlagScale float64
}

// Playing reports whether the cell is the currently playing one.
func (c CellState) Playing() bool { return c.Highlight }

// Header is the visual state of a group row.
type Header struct {
	Name     string
	ImageURL string
	Count    int
	Expanded bool
	// Playing is set when the currently playing cell belongs to this group.
	Playing bool
}

// RowView is a [Row] with its reconciled visual state.
type RowView struct {
	Row
	Header Header
	Artist *models.Artist
	Cells  [2]CellState
}

// Cell computes the state of artist's lang column at position sel against current.
//
// current may be nil when nothing is playing.
func Cell(artist *models.Artist, sel models.Selection, current *models.NowPlaying) CellState {
	song := artist.Song(sel.Language)
	if song == nil {
		return CellState{
			Language:  sel.Language,
			Flag:      sel.Language.Flag(),
			Dimmed:    true,
			FlagScale: DefaultFlagScale,
		}
	}

	cell := CellState{
		Language:  sel.Language,
		Title:     song.Title,
		Flag:      sel.Language.Flag(),
		Available: true,
		Clickable: true,
		FlagScale: DefaultFlagScale,
	}

	if matches(current, sel, artist, song) {
		cell.Highlight = true
		cell.Glow = true
		cell.FlagScale = PlayingFlagScale
	}
	return cell
}

// matches compares the (artist, song, language) triple by identity.
func matches(current *models.NowPlaying, sel models.Selection, artist *models.Artist, song *models.Song) bool {
	if current == nil || current.Song == nil {
		return false
	}
	return current.Selection.Equal(sel) && current.Artist == artist && current.Song == song
}

// Reconcile computes the visual state of rows of c against current.
func Reconcile(c *models.Catalog, rows []Row, current *models.NowPlaying) []RowView {
	views := make([]RowView, len(rows))
	for i, r := range rows {
		g := &c.Groups[r.Group]
		view := RowView{Row: r}

		if r.Kind == GroupRow {
			view.Header = Header{
				Name:     g.Name,
				ImageURL: g.ImageURL,
				Count:    len(g.Artists),
				Expanded: g.Expanded,
				Playing:  current != nil && current.Song != nil && current.Selection.Group == r.Group,
			}
			views[i] = view
			continue
		}

		artist := &g.Artists[r.Artist]
		view.Artist = artist
		for _, lang := range models.Languages {
			sel := models.Selection{Group: r.Group, Artist: r.Artist, Language: lang}
			view.Cells[lang] = Cell(artist, sel, current)
		}
		views[i] = view
	}
	return views
}

// Highlighted counts highlighted cells in views.
func Highlighted(views []RowView) int {
	n := 0
	for _, v := range views {
		for _, c := range v.Cells {
			if c.Highlight {
				n++
			}
		}
	}
	return n
}
