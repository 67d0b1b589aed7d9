// Package viz renders the building-age map in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the interactive map with year slider and hover tooltips
//   - [Canvas]: Braille-based pixel canvas with per-cell colors
//   - [Camera]: spring-smoothed pan/zoom over the dataset bounds
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Play/pause the year animation
//	<-/-> - Step the year slider
//	HJKL  - Pan the map
//	+/-   - Zoom in/out
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	S     - Save an SVG snapshot
//	?     - Show help overlay
//
// # Recording
//
// Sessions can be recorded as GIF animations using the G key. Recordings
// and snapshots are saved to the current directory.
package viz
