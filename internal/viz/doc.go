// Package viz is the interactive terminal visualizer built on Bubble Tea.
//
// [App] shows a menu of algorithms and then a [Visualizer] that animates a
// recorded trace with the colors of the active [Theme]. Playback runs on a
// virtual clock advanced by frame ticks.
//
// # Key Bindings
//
//	Space - Start, pause or resume
//	S     - Start
//	X     - Stop
//	N     - New array
//	[ ]   - Step back / forward while paused
//	+ -   - Change speed
//	T     - Cycle color themes
//	Tab   - Next algorithm
//	?     - Toggle full help
//	Q     - Back to the menu
package viz
