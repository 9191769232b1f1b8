// Package viz draws a running solar system in the terminal.
//
// [Model] is a Bubble Tea model that advances a physics.System once per tick
// and renders it on a braille [Canvas] through an orthographic [Camera].
// Each body keeps a short trail; colors come from the catalog RGB triple.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	+/-   - Zoom
//	x/y/z - Rotate the camera (shift reverses)
//	0     - Back to the top-down view
//	f     - Cycle the followed body
//	s     - Save the canvas through OnSnapshot
//	q     - Quit
package viz
