// Package mux combines a rendered silent video with the audio track of
// the original source container via ffmpeg.
package mux
