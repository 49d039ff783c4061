// package formatter exports the catalog to CSV, Markdown, plain text and JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/mica/internal/models"
	"github.com/desertthunder/mica/internal/shared"
)

// Format names an export format.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "md"
	CSV      Format = "csv"
	JSON     Format = "json"
)

// Formats lists the supported formats in display order.
var Formats = []Format{Text, Markdown, CSV, JSON}

// ParseFormat accepts a format name or a common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt", "plain":
		return Text, nil
	case "md", "markdown":
		return Markdown, nil
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case Markdown:
		return ".md"
	case CSV:
		return ".csv"
	case JSON:
		return ".json"
	default:
		return ".txt"
	}
}

func songTitle(s *models.Song) string {
	if s == nil {
		return ""
	}
	return s.Title
}

// ExportToCSV writes one row per (artist, language) pair that has a song.
//
// Columns: Group, Artist, Language, Title, URI
func ExportToCSV(c *models.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Group", "Artist", "Language", "Title", "URI"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, g := range c.Groups {
		for ai := range g.Artists {
			a := &g.Artists[ai]
			for _, lang := range models.Languages {
				song := a.Song(lang)
				if song == nil {
					continue
				}
				if err := writer.Write([]string{g.Name, a.Name, lang.String(), song.Title, song.URI}); err != nil {
					return nil, fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportToMarkdown renders each group as a section with a table of artists and both language columns.
func ExportToMarkdown(c *models.Catalog) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Catalog\n\n")
	fmt.Fprintf(&buf, "**Groups**: %d\n", len(c.Groups))
	fmt.Fprintf(&buf, "**Songs**: %d\n\n", c.SongCount())

	for _, g := range c.Groups {
		fmt.Fprintf(&buf, "## %s\n\n", g.Name)
		if g.ImageURL != "" {
			fmt.Fprintf(&buf, "![%s](%s)\n\n", g.Name, g.ImageURL)
		}

		fmt.Fprintf(&buf, "| Artist | %s %s | %s %s |\n", models.Spanish.Flag(), models.Spanish, models.English.Flag(), models.English)
		buf.WriteString("|---|---|---|\n")
		for ai := range g.Artists {
			a := &g.Artists[ai]
			fmt.Fprintf(&buf, "| %s | %s | %s |\n",
				escapeCell(a.Name),
				markdownCell(a.Spanish),
				markdownCell(a.English),
			)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

func markdownCell(s *models.Song) string {
	if s == nil {
		return "—"
	}
	return escapeCell(s.Title)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// ExportToText renders the catalog as an indented outline.
func ExportToText(c *models.Catalog) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Groups: %d\n", len(c.Groups))
	fmt.Fprintf(&buf, "Songs: %d\n", c.SongCount())

	for gi, g := range c.Groups {
		fmt.Fprintf(&buf, "\n%d. %s (%d artists)\n", gi+1, g.Name, len(g.Artists))
		for ai := range g.Artists {
			a := &g.Artists[ai]
			fmt.Fprintf(&buf, "   %s\n", a.Name)
			for _, lang := range models.Languages {
				title := songTitle(a.Song(lang))
				if title == "" {
					title = "(none)"
				}
				fmt.Fprintf(&buf, "     %s %s\n", lang.Flag(), title)
			}
		}
	}

	return buf.Bytes(), nil
}

// ExportToJSON encodes the catalog in the same shape [models.ParseCatalog] reads.
func ExportToJSON(c *models.Catalog, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(c.Groups, "", "  ")
	} else {
		data, err = json.Marshal(c.Groups)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}
	return append(data, '\n'), nil
}

// Export renders c in format f.
func Export(c *models.Catalog, f Format) ([]byte, error) {
	switch f {
	case Text:
		return ExportToText(c)
	case Markdown:
		return ExportToMarkdown(c)
	case CSV:
		return ExportToCSV(c)
	case JSON:
		return ExportToJSON(c, true)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, f)
}

// WriteExport renders c in format f to path, creating parent directories.
//
// An empty path defaults to catalog{ext} in the working directory. Returns the path written.
func WriteExport(c *models.Catalog, f Format, path string) (string, error) {
	if path == "" {
		path = "catalog" + f.Extension()
	}

	data, err := Export(c, f)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Summary returns a one-line description such as "3 groups, 7 artists, 12 songs".
func Summary(c *models.Catalog) string {
	artists := 0
	for _, g := range c.Groups {
		artists += len(g.Artists)
	}
	return fmt.Sprintf("%d groups, %d artists, %d songs", len(c.Groups), artists, c.SongCount())
}
