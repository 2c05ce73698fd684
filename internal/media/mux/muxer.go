package mux

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"subburn/internal/language"
	"subburn/internal/logging"
	"subburn/internal/services"
)

// Request describes the inputs for the final audio remux.
type Request struct {
	VideoPath  string // rendered silent video
	AudioPath  string // original container carrying the audio track
	OutputPath string
	Language   string // ISO 639-1 code for the audio track metadata
}

// Muxer combines the rendered silent video with the original audio using
// ffmpeg. The video stream is copied; audio is re-encoded to AAC.
type Muxer struct {
	binary string
	logger *slog.Logger
	run    commandRunner
}

type commandRunner func(ctx context.Context, name string, args ...string) error

// NewMuxer constructs a muxer around the given ffmpeg binary.
func NewMuxer(binary string, logger *slog.Logger) *Muxer {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Muxer{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "mux"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (m *Muxer) WithCommandRunner(run func(ctx context.Context, name string, args ...string) error) {
	if m != nil && run != nil {
		m.run = run
	}
}

// Mux writes the combined output. Failures surface as ErrMux, which the
// pipeline treats as recoverable: the silent video can still be promoted
// to the output path.
func (m *Muxer) Mux(ctx context.Context, req Request) error {
	if strings.TrimSpace(req.VideoPath) == "" || strings.TrimSpace(req.AudioPath) == "" {
		return services.Wrap(services.ErrMux, "mux", "validate", "video and audio paths required", nil)
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return services.Wrap(services.ErrMux, "mux", "validate", "output path required", nil)
	}
	if _, err := os.Stat(req.VideoPath); err != nil {
		return services.Wrap(services.ErrMux, "mux", "validate", "rendered video missing", err)
	}

	args := m.buildArgs(req)
	m.logger.Debug("executing ffmpeg mux",
		logging.String("video", req.VideoPath),
		logging.String("audio", req.AudioPath),
		logging.String("output", req.OutputPath),
	)

	if err := m.run(ctx, m.binary, args...); err != nil {
		_ = os.Remove(req.OutputPath)
		return services.Wrap(services.ErrMux, "mux", "remux", "", err)
	}
	if _, err := os.Stat(req.OutputPath); err != nil {
		return services.Wrap(services.ErrMux, "mux", "remux", "ffmpeg produced no output", err)
	}

	m.logger.Info("audio muxed onto rendered video",
		logging.String("output", req.OutputPath),
	)
	return nil
}

func (m *Muxer) buildArgs(req Request) []string {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", req.VideoPath,
		"-i", req.AudioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
	}
	if lang := language.ToISO3(req.Language); lang != "und" {
		args = append(args, "-metadata:s:a:0", "language="+lang)
	}
	return append(args, req.OutputPath)
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
