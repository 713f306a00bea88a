// Package shape provides the geometric objects scenes are drawn with.
//
// An [Object] knows its bounding box and how to flatten itself into
// [Primitive] values: paths, circles and text runs in scene units. Sinks only
// ever see primitives, so adding an object never touches a renderer.
//
// Objects are built once and then either kept for the whole scene (axes,
// titles, formulas) or rebuilt from scratch by a derivation function on every
// frame (dots, arrows and curves that follow animated cells). Layout helpers
// such as [NextTo] and [ToCorner] shift an object while it is being built;
// nothing shifts an object after it has been staged.
//
// # Objects
//
//   - [Dot], [Line], [Arrow], [Curve], [Rect]: basic strokes and fills
//   - [Text]: TeX source shown through [PlainTeX]
//   - [Axes], [NumberPlane]: coordinate systems with [Axes.C2P] and [Axes.Plot]
//   - [Group]: a list of objects laid out together
package shape
