package recognizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"subburn/internal/language"
	"subburn/internal/logging"
	"subburn/internal/services"
	"subburn/internal/transcript"
)

const (
	recognizerCommand = "uvx"

	cpuDevice      = "cpu"
	cpuComputeType = "int8"
	batchSize      = "4"
	outputFormat   = "json"
)

// Service invokes whisperx on an extracted audio track and converts the
// JSON transcript into word timestamps.
type Service struct {
	model  string
	lang   string
	logger *slog.Logger
	run    commandRunner
}

type commandRunner func(ctx context.Context, name string, args ...string) error

// NewService builds a recognizer for the given whisper model. An empty
// language lets whisperx auto-detect.
func NewService(model, lang string, logger *slog.Logger) *Service {
	if strings.TrimSpace(model) == "" {
		model = "small"
	}
	return &Service{
		model:  model,
		lang:   lang,
		logger: logging.NewComponentLogger(logger, "recognizer"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (s *Service) WithCommandRunner(run func(ctx context.Context, name string, args ...string) error) {
	if s != nil && run != nil {
		s.run = run
	}
}

// Transcribe runs speech recognition over audioPath, writing the raw
// transcript into workDir, and returns the normalized word list.
func (s *Service) Transcribe(ctx context.Context, audioPath, workDir string) ([]transcript.Word, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return nil, services.Wrap(services.ErrInputNotFound, "recognizer", "transcribe", "audio track missing", err)
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "recognizer", "transcribe", "create transcript dir", err)
	}

	start := time.Now()
	args := s.buildArgs(audioPath, workDir)
	s.logger.Info("running speech recognition",
		logging.String("model", s.model),
		logging.String("language", language.DisplayName(s.lang)),
		logging.String("audio", audioPath),
	)
	if err := s.run(ctx, recognizerCommand, args...); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "recognizer", "transcribe", "whisperx failed", err)
	}

	jsonPath := transcriptPath(audioPath, workDir)
	words, err := ParseWords(jsonPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "recognizer", "transcribe", "read whisperx output", err)
	}
	normalized, err := transcript.NormalizeWords(words, s.logger)
	if err != nil {
		return nil, err
	}

	s.logger.Info("speech recognition complete",
		logging.Int("words", len(normalized)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return normalized, nil
}

func (s *Service) buildArgs(audioPath, workDir string) []string {
	args := []string{
		"whisperx",
		audioPath,
		"--model", s.model,
		"--batch_size", batchSize,
		"--output_dir", workDir,
		"--output_format", outputFormat,
		"--device", cpuDevice,
		"--compute_type", cpuComputeType,
	}
	if lang := language.ToISO2(s.lang); lang != "" {
		args = append(args, "--language", lang)
	}
	return args
}

// transcriptPath mirrors whisperx's output naming: the audio basename
// with the extension swapped for .json inside the output directory.
func transcriptPath(audioPath, workDir string) string {
	base := filepath.Base(audioPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(workDir, base+".json")
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
