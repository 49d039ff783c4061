package models

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/desertthunder/mica/internal/shared"
)

//go:embed catalog.json
var defaultCatalog []byte

const spotifyURIPrefix = "spotify:"

// Catalog is the ordered list of song groups.
type Catalog struct {
	Groups []SongGroup
}

// DefaultCatalog decodes the embedded catalog.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded catalog: %v", err))
	}
	return c
}

// LoadCatalog reads the catalog at path, or the embedded one when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", shared.ErrCatalogNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a JSON array of groups.
func ParseCatalog(data []byte) (*Catalog, error) {
	var groups []SongGroup
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&groups); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidCatalog, err)
	}

	c := &Catalog{Groups: groups}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks group names and song URIs.
func (c *Catalog) Validate() error {
	for gi, g := range c.Groups {
		if strings.TrimSpace(g.Name) == "" {
			return fmt.Errorf("%w: group %d has no name", shared.ErrInvalidCatalog, gi)
		}
		for ai := range g.Artists {
			a := &g.Artists[ai]
			for _, lang := range Languages {
				song := a.Song(lang)
				if song == nil {
					continue
				}
				if !strings.HasPrefix(song.URI, spotifyURIPrefix) {
					return fmt.Errorf("%w: %s/%s %s song has invalid uri %q",
						shared.ErrInvalidCatalog, g.Name, a.Name, lang, song.URI)
				}
			}
		}
	}
	return nil
}

// Resolve returns the cell at sel. The song is nil for an empty column.
func (c *Catalog) Resolve(sel Selection) (NowPlaying, error) {
	if sel.Group < 0 || sel.Group >= len(c.Groups) {
		return NowPlaying{}, fmt.Errorf("%w: group %d", shared.ErrInvalidArgument, sel.Group)
	}
	g := &c.Groups[sel.Group]
	if sel.Artist < 0 || sel.Artist >= len(g.Artists) {
		return NowPlaying{}, fmt.Errorf("%w: artist %d in %s", shared.ErrInvalidArgument, sel.Artist, g.Name)
	}
	a := &g.Artists[sel.Artist]
	return NowPlaying{Selection: sel, Group: g, Artist: a, Song: a.Song(sel.Language)}, nil
}

// Find locates a cell by case-insensitive group and artist name.
func (c *Catalog) Find(group, artist string, lang Language) (NowPlaying, error) {
	for gi := range c.Groups {
		if !strings.EqualFold(c.Groups[gi].Name, group) {
			continue
		}
		for ai := range c.Groups[gi].Artists {
			if strings.EqualFold(c.Groups[gi].Artists[ai].Name, artist) {
				return c.Resolve(Selection{Group: gi, Artist: ai, Language: lang})
			}
		}
		return NowPlaying{}, fmt.Errorf("%w: artist %q in group %q", shared.ErrInvalidArgument, artist, group)
	}
	return NowPlaying{}, fmt.Errorf("%w: group %q", shared.ErrInvalidArgument, group)
}

// FindURI returns the first cell whose song has uri.
func (c *Catalog) FindURI(uri string) (NowPlaying, bool) {
	for gi := range c.Groups {
		for ai := range c.Groups[gi].Artists {
			for _, lang := range Languages {
				a := &c.Groups[gi].Artists[ai]
				if s := a.Song(lang); s != nil && s.URI == uri {
					return NowPlaying{
						Selection: Selection{Group: gi, Artist: ai, Language: lang},
						Group:     &c.Groups[gi],
						Artist:    a,
						Song:      s,
					}, true
				}
			}
		}
	}
	return NowPlaying{}, false
}

// SongCount returns the number of available songs across all groups.
func (c *Catalog) SongCount() int {
	n := 0
	for gi := range c.Groups {
		for ai := range c.Groups[gi].Artists {
			for _, lang := range Languages {
				if c.Groups[gi].Artists[ai].Song(lang) != nil {
					n++
				}
			}
		}
	}
	return n
}
