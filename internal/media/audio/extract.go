package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"subburn/internal/services"
)

// Runner executes an external command. Tests inject fakes through this.
type Runner func(ctx context.Context, name string, args ...string) error

func defaultRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// ExtractArgs builds the ffmpeg arguments that turn a video's first audio
// track into the mono 16 kHz 16-bit PCM WAV the recognizer consumes.
func ExtractArgs(source, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}

// Extract pulls the audio stream out of source into a recognizer-ready
// WAV at dest. Backend failures surface as ErrAudioExtraction; a missing
// audio track is one of them.
func Extract(ctx context.Context, ffmpegBinary, source, dest string, run Runner) error {
	if strings.TrimSpace(source) == "" {
		return services.Wrap(services.ErrAudioExtraction, "audio", "extract", "source path required", nil)
	}
	if strings.TrimSpace(dest) == "" {
		return services.Wrap(services.ErrAudioExtraction, "audio", "extract", "destination path required", nil)
	}
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	if run == nil {
		run = defaultRunner
	}

	if err := run(ctx, ffmpegBinary, ExtractArgs(source, dest)...); err != nil {
		_ = os.Remove(dest)
		return services.Wrap(services.ErrAudioExtraction, "audio", "extract", "", err)
	}
	return nil
}
