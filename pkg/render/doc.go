// Package render turns scene frames into files.
//
// # Overview
//
// Frames are a flat list of primitives in scene units: a 14.2̅ × 8 plane with
// the origin at the centre and y pointing up. A [Viewport] maps that plane
// onto a pixel grid. The sink subpackage draws frames:
//
//   - SVG via direct markup generation
//   - PNG via fogleman/gg with the Go fonts
//   - PDF by converting the SVG with rsvg-convert
//   - MP4 by piping PNG frames into ffmpeg
//   - JSON as a timeline of cell values
//
// The bindgraph subpackage draws which cells feed which derived objects.
//
// # External tools
//
// PDF export needs librsvg and video export needs ffmpeg. Both are looked up
// on PATH when first used, and a missing tool is reported as an
// UNSUPPORTED error naming the package to install.
package render
