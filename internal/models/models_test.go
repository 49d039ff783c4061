package models

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/mica/internal/shared"
)

func TestLanguage(t *testing.T) {
	tc := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{in: "es", want: Spanish},
		{in: "Spanish", want: Spanish},
		{in: "EN", want: English},
		{in: "english", want: English},
		{in: "fr", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLanguage(tt.in)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLanguage(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	t.Run("Other", func(t *testing.T) {
		if Spanish.Other() != English || English.Other() != Spanish {
			t.Error("Other should swap columns")
		}
	})

	t.Run("Flag", func(t *testing.T) {
		if Spanish.Flag() != "🇪🇸" || English.Flag() != "🇺🇸" {
			t.Error("unexpected flag glyphs")
		}
	})
}

func TestArtistSong(t *testing.T) {
	es := &Song{Title: "Rosas", URI: "spotify:track:a"}
	artist := Artist{Name: "Test", Spanish: es}

	if artist.Song(Spanish) != es {
		t.Error("expected spanish song")
	}
	if artist.Song(English) != nil {
		t.Error("expected nil english song")
	}
}

func TestCatalog(t *testing.T) {
	t.Run("DefaultCatalog", func(t *testing.T) {
		c := DefaultCatalog()
		if len(c.Groups) == 0 {
			t.Fatal("expected embedded groups")
		}
		for _, g := range c.Groups {
			if g.Expanded {
				t.Errorf("group %s should start collapsed", g.Name)
			}
		}
		if c.SongCount() == 0 {
			t.Error("expected songs in embedded catalog")
		}
	})

	t.Run("LoadCatalog empty path", func(t *testing.T) {
		c, err := LoadCatalog("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(c.Groups) != len(DefaultCatalog().Groups) {
			t.Error("empty path should load embedded catalog")
		}
	})

	t.Run("LoadCatalog missing file", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.json"))
		if !errors.Is(err, shared.ErrCatalogNotFound) {
			t.Errorf("expected ErrCatalogNotFound, got %v", err)
		}
	})

	t.Run("LoadCatalog file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		data := `[{"name":"G","imageUrl":"","artists":[{"name":"A","imageUrl":"","spanish":{"title":"S","spotifyUri":"spotify:track:1"},"english":null}]}]`
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		c, err := LoadCatalog(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.SongCount() != 1 {
			t.Errorf("expected 1 song, got %d", c.SongCount())
		}
	})

	t.Run("ParseCatalog rejects", func(t *testing.T) {
		tc := map[string]string{
			"malformed json": `[{`,
			"missing name":   `[{"name":"","artists":[]}]`,
			"bad uri":        `[{"name":"G","artists":[{"name":"A","spanish":{"title":"S","spotifyUri":"http://x"}}]}]`,
			"unknown field":  `[{"name":"G","isExpanded":true,"artists":[]}]`,
		}
		for name, data := range tc {
			t.Run(name, func(t *testing.T) {
				if _, err := ParseCatalog([]byte(data)); !errors.Is(err, shared.ErrInvalidCatalog) {
					t.Errorf("expected ErrInvalidCatalog, got %v", err)
				}
			})
		}
	})

	t.Run("Resolve", func(t *testing.T) {
		c := DefaultCatalog()

		np, err := c.Resolve(Selection{Group: 0, Artist: 0, Language: English})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if np.Song != c.Groups[0].Artists[0].English {
			t.Error("resolve should return the catalog's song pointer")
		}

		if _, err := c.Resolve(Selection{Group: 99}); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if _, err := c.Resolve(Selection{Group: 0, Artist: -1}); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Find", func(t *testing.T) {
		c := DefaultCatalog()

		np, err := c.Find("pop latino", "JUANES", Spanish)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if np.Song == nil || np.Song.Title != "La Camisa Negra" {
			t.Errorf("unexpected song %+v", np.Song)
		}

		np, err = c.Find("Pop Latino", "Juanes", English)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if np.Song != nil {
			t.Error("expected empty english column")
		}

		if _, err := c.Find("Jazz", "Juanes", Spanish); err == nil {
			t.Error("expected error for unknown group")
		}
		if _, err := c.Find("Pop Latino", "Nobody", Spanish); err == nil {
			t.Error("expected error for unknown artist")
		}
	})

	t.Run("FindURI", func(t *testing.T) {
		c := DefaultCatalog()
		want := c.Groups[1].Artists[1].English

		np, ok := c.FindURI(want.URI)
		if !ok {
			t.Fatal("expected to find uri")
		}
		if !np.Selection.Equal(Selection{Group: 1, Artist: 1, Language: English}) {
			t.Errorf("unexpected selection %+v", np.Selection)
		}

		if _, ok := c.FindURI("spotify:track:missing"); ok {
			t.Error("expected miss for unknown uri")
		}
	})
}

func TestNowPlayingLabel(t *testing.T) {
	artist := &Artist{Name: "Juanes"}

	if got := (NowPlaying{Artist: artist, Song: &Song{Title: "A Dios le Pido"}}).Label(); got != "A Dios le Pido · Juanes" {
		t.Errorf("unexpected label %q", got)
	}
	if got := (NowPlaying{Artist: artist, Song: &Song{}}).Label(); got != "Juanes" {
		t.Errorf("untitled song should show artist, got %q", got)
	}
	if got := (NowPlaying{}).Label(); got != "" {
		t.Errorf("expected empty label, got %q", got)
	}
}
