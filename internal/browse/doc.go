// Package browse flattens the catalog into visible rows and reconciles their visual state with the currently
// playing cell.
//
// A [Browser] owns the cursor and the expanded flags of the groups. [Reconcile] recomputes every
// [CellState] from scratch whenever the selection changes: the single cell matching the playing
// (artist, song, language) triple is highlighted, every other available cell reverts to the default style, and
// empty columns are dimmed and never clickable.
package browse
