package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/mica/internal/shared"
)

// Language is one of the two song columns of an [Artist].
type Language int

const (
	Spanish Language = iota
	English
)

// Languages lists every column in display order.
var Languages = []Language{Spanish, English}

func (l Language) String() string {
	switch l {
	case Spanish:
		return "spanish"
	case English:
		return "english"
	default:
		return fmt.Sprintf("language(%d)", int(l))
	}
}

// Flag returns the flag glyph shown next to a song in this language.
func (l Language) Flag() string {
	switch l {
	case Spanish:
		return "🇪🇸"
	case English:
		return "🇺🇸"
	default:
		return "  "
	}
}

// Other returns the opposite column.
func (l Language) Other() Language {
	if l == Spanish {
		return English
	}
	return Spanish
}

// ParseLanguage accepts "es", "spanish", "en" or "english" in any case.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "es", "spanish", "español", "espanol":
		return Spanish, nil
	case "en", "english":
		return English, nil
	default:
		return 0, fmt.Errorf("%w: unknown language %q", shared.ErrInvalidArgument, s)
	}
}

// Song is a single playable track.
type Song struct {
	Title        string `json:"title"`
	URI          string `json:"spotifyUri"`
	AlbumTrackID string `json:"albumTrackId,omitempty"`
}

// Artist offers an optional song per language.
type Artist struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Spanish  *Song  `json:"spanish"`
	English  *Song  `json:"english"`
}

// Song returns the song for lang or nil when the artist has none.
func (a *Artist) Song(lang Language) *Song {
	switch lang {
	case Spanish:
		return a.Spanish
	case English:
		return a.English
	default:
		return nil
	}
}

// SongGroup is a collapsible section of artists.
//
// Expanded is session state and is never serialised.
type SongGroup struct {
	Name     string   `json:"name"`
	ImageURL string   `json:"imageUrl"`
	Artists  []Artist `json:"artists"`
	Expanded bool     `json:"-"`
}

// Selection identifies a catalog cell: group, artist within the group and language.
type Selection struct {
	Group    int
	Artist   int
	Language Language
}

// Equal reports whether s and o point at the same cell.
func (s Selection) Equal(o Selection) bool {
	return s.Group == o.Group && s.Artist == o.Artist && s.Language == o.Language
}

// NowPlaying is the resolved currently playing triple.
type NowPlaying struct {
	Selection Selection
	Group     *SongGroup
	Artist    *Artist
	Song      *Song
}

// Label renders "Title · Artist" for the player bar.
func (n NowPlaying) Label() string {
	if n.Song == nil || n.Artist == nil {
		return ""
	}
	if n.Song.Title == "" {
		return n.Artist.Name
	}
	return fmt.Sprintf("%s · %s", n.Song.Title, n.Artist.Name)
}
