// Package sink draws scene frames in concrete output formats.
//
// The Render* functions draw a single frame and are pure: the same frame and
// options always produce the same bytes, which is what lets the pipeline
// cache them. The *Sink types consume a whole scene through [scene.Sink]:
//
//   - [DirSink] writes one numbered file per frame
//   - [StillSink] keeps the last frame and writes it once on Close
//   - [VideoSink] streams PNG frames into ffmpeg
//   - [TimelineSink] collects cell values and writes a JSON timeline
package sink
