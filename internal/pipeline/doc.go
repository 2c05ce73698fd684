// Package pipeline orchestrates a full burn-in run: probe, transcription,
// caption segmentation, frame rendering, and the final audio mux.
package pipeline
