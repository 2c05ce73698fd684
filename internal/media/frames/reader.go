package frames

import (
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strings"
)

// Reader decodes a video into a sequential stream of RGBA frames by
// running ffmpeg with a rawvideo pipe on stdout. Frames arrive strictly
// in presentation order.
type Reader struct {
	stream io.Reader
	closer func() error
	width  int
	height int
	eof    bool
}

// NewReader starts an ffmpeg decode of source at the given dimensions.
// The caller must Close the reader to reap the ffmpeg process.
func NewReader(ctx context.Context, ffmpegBinary, source string, width, height int) (*Reader, error) {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-",
	}
	cmd := exec.CommandContext(ctx, ffmpegBinary, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("frame reader pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start frame decoder: %w", err)
	}

	closer := func() error {
		stdout.Close()
		if err := cmd.Wait(); err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return fmt.Errorf("frame decoder: %w: %s", err, msg)
			}
			return fmt.Errorf("frame decoder: %w", err)
		}
		return nil
	}
	return &Reader{stream: stdout, closer: closer, width: width, height: height}, nil
}

// NewReaderFromStream wraps an existing rawvideo RGBA byte stream.
// Used by tests and any caller with its own decode path.
func NewReaderFromStream(stream io.Reader, width, height int) *Reader {
	return &Reader{stream: stream, width: width, height: height}
}

// Next returns the next frame, or io.EOF once the stream is exhausted.
// A truncated frame mid-stream is an error, not a silent EOF.
func (r *Reader) Next() (*image.NRGBA, error) {
	if r.eof {
		return nil, io.EOF
	}
	size := r.width * r.height * 4
	buf := make([]byte, size)
	_, err := io.ReadFull(r.stream, buf)
	switch err {
	case nil:
	case io.EOF:
		r.eof = true
		return nil, io.EOF
	case io.ErrUnexpectedEOF:
		return nil, fmt.Errorf("truncated frame: %w", err)
	default:
		return nil, fmt.Errorf("read frame: %w", err)
	}
	return &image.NRGBA{
		Pix:    buf,
		Stride: r.width * 4,
		Rect:   image.Rect(0, 0, r.width, r.height),
	}, nil
}

// Close releases the underlying decoder. Safe to call after EOF; if the
// stream was abandoned early the decoder's exit error is suppressed in
// favor of the cause the caller already has.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer()
	r.closer = nil
	if r.eof {
		// Clean end of stream: surface any decoder failure.
		return err
	}
	return nil
}
