package pipeline

import (
	"context"
	"log/slog"

	"subburn/internal/media/ffprobe"
	"subburn/internal/media/frames"
	"subburn/internal/render"
	"subburn/internal/transcript"
)

// RenderJob carries everything the frame render stage needs.
type RenderJob struct {
	FFmpegBinary string
	Source       string
	SilentPath   string
	Info         ffprobe.VideoInfo
	Style        render.Style
	Segments     []transcript.Segment
	Logger       *slog.Logger
	Progress     render.ProgressFunc
}

// RenderFunc renders captioned frames into a silent video file.
type RenderFunc func(ctx context.Context, job RenderJob) (render.Stats, error)

func renderToFile(ctx context.Context, job RenderJob) (render.Stats, error) {
	reader, err := frames.NewReader(ctx, job.FFmpegBinary, job.Source, job.Info.Width, job.Info.Height)
	if err != nil {
		return render.Stats{}, err
	}
	defer reader.Close()

	writer, err := frames.NewWriter(ctx, job.FFmpegBinary, job.SilentPath, job.Info.Width, job.Info.Height, job.Info.FPS)
	if err != nil {
		return render.Stats{}, err
	}

	compositor, err := render.NewCompositor(job.Style)
	if err != nil {
		_ = writer.Close()
		return render.Stats{}, err
	}

	loop := render.NewLoop(compositor, job.Info.FPS, job.Info.TotalFrames, job.Logger).WithProgress(job.Progress)
	stats, err := loop.Run(ctx, reader, writer, job.Segments)
	if err != nil {
		_ = writer.Close()
		return stats, err
	}
	// Closing the writer flushes the pipe and waits for the encoder; the
	// output file is not valid until it returns.
	readerErr := reader.Close()
	writerErr := writer.Close()
	if readerErr != nil {
		return stats, readerErr
	}
	return stats, writerErr
}
