// Package models defines the catalog browsed by mica.
//
// The catalog is an ordered list of [SongGroup] values. Each group holds [Artist] entries and every artist offers at
// most one song per [Language]:
//   - [Song] : a title plus the player resolvable Spotify URI
//   - [Artist] : name, image reference, optional Spanish and English songs
//   - [SongGroup] : name, image reference, artists and the UI-only expanded flag
//
// A [Selection] identifies the currently playing cell by catalog position and language. Two artists that share a name
// are still distinct rows.
//
// [LoadCatalog] reads a JSON file; [DefaultCatalog] returns the embedded catalog shipped with the binary.
package models
