// Package viz draws pendulums in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [Model]: Bubble Tea program that steps a pendulum in real time
//   - [PlotPoints]: scatter plot of a point cloud, used for phase portraits
//   - [WriteSVG]: polylines of recorded joint traces
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	←/→   - Apply torque to the first link (H/L also work)
//	0     - Release torque
//	R     - Reset to initial state
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	[]/   - Time travel (rewind/forward)
//
// # Recording
//
// The visualization supports recording simulation sessions as GIF animations
// using the G key. Recordings are saved to the current directory.
package viz
