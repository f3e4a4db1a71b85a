// Package viz draws an animated scene in the terminal.
//
// The package implements the live view using the Bubble Tea framework:
//
//   - [Model]: polls a [scene.Grid] every frame and renders it
//   - [Canvas]: a rune grid sprites are rasterised onto
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume the update loops
//	R     - Re-roll every sprite's behaviour
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
//
// Update loops run on their own goroutines; the view only reads snapshots,
// so frame rate and tick rate are independent.
package viz
