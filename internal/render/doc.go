// Package render composites captions onto video frames.
//
// It covers the visual half of the pipeline: wrapping caption text into
// lines that fit the frame, drawing outlined text over a translucent box,
// and the frame-synchronized loop that pairs each frame's presentation
// time with the active caption.
package render
