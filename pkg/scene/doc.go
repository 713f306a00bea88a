// Package scene stages live sources and plays animations against them.
//
// A [Scene] owns an ordered list of staged sources. Each play step runs its
// animations in lockstep, sampling frames at the configured frame rate; every
// frame re-resolves every staged source, so derived geometry follows the cells
// the animations move. Frames are handed to a [Sink] as they are produced.
//
// Steps are strictly sequential and a failing derivation aborts playback with
// the error it returned. Nothing in this package retries.
package scene
