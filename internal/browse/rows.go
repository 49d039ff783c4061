package browse

import "github.com/desertthunder/mica/internal/models"

// RowKind distinguishes group headers from artist rows.
type RowKind int

const (
	GroupRow RowKind = iota
	ArtistRow
)

// Row is a visible line of the nested list. Artist is -1 on group rows.
type Row struct {
	Kind   RowKind
	Group  int
	Artist int
}

// Rows flattens c: every group header, followed by its artists when the group is expanded.
func Rows(c *models.Catalog) []Row {
	var rows []Row
	for gi := range c.Groups {
		rows = append(rows, Row{Kind: GroupRow, Group: gi, Artist: -1})
		if !c.Groups[gi].Expanded {
			continue
		}
		for ai := range c.Groups[gi].Artists {
			rows = append(rows, Row{Kind: ArtistRow, Group: gi, Artist: ai})
		}
	}
	return rows
}

// headerIndex returns the index of the header row for group in rows, or -1.
func headerIndex(rows []Row, group int) int {
	for i, r := range rows {
		if r.Kind == GroupRow && r.Group == group {
			return i
		}
	}
	return -1
}
