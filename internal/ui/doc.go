// Package ui implements the interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [ConnectView] : connecting to the player, or the failure with r to retry
//  2. [BrowseView] : the nested group/artist list with a Spanish and an English column, and the player bar
//
// Player events arrive on the subscription channel and are turned into messages by a command that waits on it,
// so all state lives in the [Model] touched only from Update. The progress bar is refreshed by a tick chain that
// runs while a track plays; each tick carries a generation and stale generations are dropped.
//
// Keyboard navigation uses vim-style bindings (h/j/k/l, enter, space, s, r, ?, q) with contextual help displayed via
// charmbracelet/bubbles/help.
package ui
