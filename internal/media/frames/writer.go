package frames

import (
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// Writer encodes a sequential stream of RGBA frames into a silent H.264
// video by feeding ffmpeg rawvideo on stdin.
type Writer struct {
	stream io.Writer
	closer func() error
	width  int
	height int
}

// NewWriter starts an ffmpeg encode to dest at the given geometry and
// frame rate. The output carries no audio; the mux stage re-attaches it.
func NewWriter(ctx context.Context, ffmpegBinary, dest string, width, height int, fps float64) (*Writer, error) {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", "-",
		"-an",
		"-c:v", "libx264",
		"-preset", "medium",
		"-pix_fmt", "yuv420p",
		dest,
	}
	cmd := exec.CommandContext(ctx, ffmpegBinary, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("frame writer pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start frame encoder: %w", err)
	}

	closer := func() error {
		stdin.Close()
		if err := cmd.Wait(); err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return fmt.Errorf("frame encoder: %w: %s", err, msg)
			}
			return fmt.Errorf("frame encoder: %w", err)
		}
		return nil
	}
	return &Writer{stream: stdin, closer: closer, width: width, height: height}, nil
}

// NewWriterToStream wraps an existing writer for the rawvideo bytes.
// Used by tests and any caller with its own encode path.
func NewWriterToStream(stream io.Writer, width, height int) *Writer {
	return &Writer{stream: stream, width: width, height: height}
}

// Write sends one frame to the encoder. The frame geometry must match the
// writer's.
func (w *Writer) Write(frame *image.NRGBA) error {
	bounds := frame.Bounds()
	if bounds.Dx() != w.width || bounds.Dy() != w.height {
		return fmt.Errorf("frame size %dx%d does not match writer %dx%d",
			bounds.Dx(), bounds.Dy(), w.width, w.height)
	}

	rowBytes := w.width * 4
	if frame.Stride == rowBytes && bounds.Min == (image.Point{}) {
		_, err := w.stream.Write(frame.Pix[:rowBytes*w.height])
		return err
	}
	// Subimages or padded strides go out row by row.
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		offset := frame.PixOffset(bounds.Min.X, y)
		if _, err := w.stream.Write(frame.Pix[offset : offset+rowBytes]); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes the stream and waits for the encoder to finish writing
// the container. Must be called on every exit path; the output file is
// not valid until Close returns nil.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer()
	w.closer = nil
	return err
}
