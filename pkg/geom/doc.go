// Package geom provides the plane geometry scenes are built from.
//
// Coordinates are scene units with the origin at the centre of the frame and
// y pointing up. The default [Frame] is 8 units tall with a 16:9 aspect ratio,
// so a unit is the same length regardless of the pixel size a scene is
// rendered at.
//
// Everything here is a value type: vectors, matrices and bounds are copied,
// never shared, which lets derived geometry be recomputed freely on every
// frame.
package geom
