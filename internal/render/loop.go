package render

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"

	"subburn/internal/logging"
	"subburn/internal/services"
	"subburn/internal/timeline"
	"subburn/internal/transcript"
)

// Source yields frames in presentation order. It returns io.EOF when the
// stream is exhausted; any other error is fatal to the render pass.
type Source interface {
	Next() (*image.NRGBA, error)
}

// Sink consumes rendered frames in the order they are written.
type Sink interface {
	Write(*image.NRGBA) error
}

// ProgressFunc receives periodic render progress. totalFrames is zero when
// the source length is unknown.
type ProgressFunc func(frameIndex, totalFrames int)

// progressInterval is how many frames pass between progress callbacks.
const progressInterval = 30

// Loop drives the frame-synchronized caption pass: it reads frames,
// resolves the active caption for each frame's presentation time, and
// composites wrapped text onto frames that have one.
type Loop struct {
	fps         float64
	totalFrames int
	compositor  *Compositor
	logger      *slog.Logger
	progress    ProgressFunc
}

// Stats summarizes a completed render pass.
type Stats struct {
	FramesWritten    int
	FramesCaptioned  int
	SegmentsConsumed int
}

// NewLoop builds a render loop. totalFrames may be zero when unknown; it
// only affects progress reporting.
func NewLoop(compositor *Compositor, fps float64, totalFrames int, logger *slog.Logger) *Loop {
	return &Loop{
		fps:         fps,
		totalFrames: totalFrames,
		compositor:  compositor,
		logger:      logging.NewComponentLogger(logger, "render"),
	}
}

// WithProgress registers a callback invoked every few frames.
func (l *Loop) WithProgress(fn ProgressFunc) *Loop {
	l.progress = fn
	return l
}

// Run processes frames from src until exhaustion, writing each to sink.
// Frames are consumed strictly in index order; each frame's presentation
// time is index/fps, which keeps the cursor's forward scan amortized O(1)
// per frame. A frame read failure aborts the pass. Cancellation is checked
// between frames and surfaces as the context's error.
func (l *Loop) Run(ctx context.Context, src Source, sink Sink, segments []transcript.Segment) (Stats, error) {
	var stats Stats
	cursor := timeline.NewCursor(segments)

	var lastActive *transcript.Segment
	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		frame, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return stats, services.Wrap(services.ErrFrameSource, "render", "read frame", "", err)
		}

		t := float64(index) / l.fps
		active := cursor.Advance(t)
		if active != nil {
			maxWidth := frame.Bounds().Dx() - 2*horizontalMargin
			lines := WrapText(active.Text, maxWidth, l.compositor.Measure)
			l.compositor.Draw(frame, lines)
			stats.FramesCaptioned++
			if active != lastActive {
				stats.SegmentsConsumed++
				lastActive = active
				l.logger.Debug("caption active",
					logging.Float64("time", t),
					logging.String("text", active.Text),
				)
			}
		} else {
			lastActive = nil
		}

		if err := sink.Write(frame); err != nil {
			return stats, services.Wrap(services.ErrFrameSource, "render", "write frame", "", err)
		}
		stats.FramesWritten++

		if l.progress != nil && index%progressInterval == 0 {
			l.progress(index, l.totalFrames)
		}
	}

	l.logger.Info("render pass complete",
		logging.Int("frames", stats.FramesWritten),
		logging.Int("captioned", stats.FramesCaptioned),
	)
	return stats, nil
}
