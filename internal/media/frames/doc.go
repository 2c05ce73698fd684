// Package frames streams raw video frames to and from ffmpeg pipes.
//
// The reader decodes a source video into RGBA buffers in presentation
// order; the writer encodes buffers back into a silent H.264 track. Both
// sides treat ffmpeg as an opaque codec process.
package frames
