package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"subburn/internal/config"
	"subburn/internal/fileutil"
	"subburn/internal/logging"
	"subburn/internal/media/audio"
	"subburn/internal/media/ffprobe"
	"subburn/internal/media/mux"
	"subburn/internal/recognizer"
	"subburn/internal/render"
	"subburn/internal/services"
	"subburn/internal/transcache"
	"subburn/internal/transcript"
)

// ProgressFunc receives coarse stage progress for the whole run.
type ProgressFunc func(stage string, percent int)

// Request describes one burn-in run.
type Request struct {
	Input     string
	Output    string
	Language  string // overrides the configured recognizer language
	MaxChars  int    // overrides the configured segmenter budget when > 0
	SRTOut    string // when set, the generated captions are also written here
	EditedSRT string // when set, captions are read from this file instead of transcribing
	KeepTemp  bool
	Progress  ProgressFunc
}

// Result summarizes a completed run.
type Result struct {
	Output   string
	Segments int
	Stats    render.Stats
	Muxed    bool // false when the silent video was promoted after a mux failure
}

// Transcriber produces word timestamps from an extracted audio track.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, workDir string) ([]transcript.Word, error)
}

// AudioMuxer combines a rendered silent video with the original audio.
type AudioMuxer interface {
	Mux(ctx context.Context, req mux.Request) error
}

// Cache stores transcripts keyed by media fingerprint.
type Cache interface {
	Get(ctx context.Context, fingerprint, model, lang string) ([]transcript.Word, bool, error)
	Put(ctx context.Context, fingerprint, model, lang string, words []transcript.Word) error
	Close() error
}

// Pipeline orchestrates probe, transcription, rendering, and muxing.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger

	transcriber Transcriber
	muxer       AudioMuxer
	cache       Cache

	probe   func(ctx context.Context, path string) (ffprobe.VideoInfo, error)
	extract func(ctx context.Context, source, dest string) error
	render  RenderFunc
}

// New wires a pipeline against the real external tools. The transcript
// cache is attached lazily per run when enabled in the config.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	p := &Pipeline{
		cfg:    cfg,
		logger: logger,
	}
	p.transcriber = recognizer.NewService(cfg.Recognizer.Model, cfg.Recognizer.Language, logger)
	p.muxer = mux.NewMuxer(cfg.FFmpegBinary(), logger)
	p.probe = func(ctx context.Context, path string) (ffprobe.VideoInfo, error) {
		result, err := ffprobe.Inspect(ctx, cfg.FFprobeBinary(), path, nil)
		if err != nil {
			return ffprobe.VideoInfo{}, err
		}
		return result.Video()
	}
	p.extract = func(ctx context.Context, source, dest string) error {
		return audio.Extract(ctx, cfg.FFmpegBinary(), source, dest, nil)
	}
	p.render = renderToFile
	return p
}

// WithTranscriber replaces the speech recognizer.
func (p *Pipeline) WithTranscriber(t Transcriber) *Pipeline {
	if t != nil {
		p.transcriber = t
	}
	return p
}

// WithMuxer replaces the audio muxer.
func (p *Pipeline) WithMuxer(m AudioMuxer) *Pipeline {
	if m != nil {
		p.muxer = m
	}
	return p
}

// WithCache replaces the transcript cache.
func (p *Pipeline) WithCache(c Cache) *Pipeline {
	p.cache = c
	return p
}

// WithProbe replaces the input inspector.
func (p *Pipeline) WithProbe(fn func(ctx context.Context, path string) (ffprobe.VideoInfo, error)) *Pipeline {
	if fn != nil {
		p.probe = fn
	}
	return p
}

// WithExtract replaces the audio extractor.
func (p *Pipeline) WithExtract(fn func(ctx context.Context, source, dest string) error) *Pipeline {
	if fn != nil {
		p.extract = fn
	}
	return p
}

// WithRender replaces the frame render stage.
func (p *Pipeline) WithRender(fn RenderFunc) *Pipeline {
	if fn != nil {
		p.render = fn
	}
	return p
}

// Run executes the full pipeline. The output file appears atomically:
// it is written next to its final location and renamed only on success.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	runID := uuid.NewString()
	logger := p.logger.With(
		logging.String(logging.FieldComponent, "pipeline"),
		logging.String(logging.FieldRunID, runID),
	)

	if strings.TrimSpace(req.Input) == "" || strings.TrimSpace(req.Output) == "" {
		return Result{}, services.Wrap(services.ErrConfiguration, "pipeline", "validate", "input and output paths required", nil)
	}

	report(req.Progress, "probe", 0)
	info, err := p.probe(ctx, req.Input)
	if err != nil {
		return Result{}, err
	}
	logger.Info("input probed",
		logging.Int("width", info.Width),
		logging.Int("height", info.Height),
		logging.Float64("fps", info.FPS),
		logging.Int("frames", info.TotalFrames),
		logging.Bool("has_audio", info.HasAudio),
	)

	if err := p.cfg.EnsureDirectories(); err != nil {
		return Result{}, services.Wrap(services.ErrConfiguration, "pipeline", "staging", "prepare staging directory", err)
	}
	lock := flock.New(filepath.Join(p.cfg.Paths.StagingDir, ".subburn.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return Result{}, services.Wrap(services.ErrConfiguration, "pipeline", "staging", "acquire staging lock", err)
	}
	if !locked {
		return Result{}, services.Wrap(services.ErrConfiguration, "pipeline", "staging", "staging directory is in use by another run", nil)
	}
	defer func() { _ = lock.Unlock() }()

	runDir := filepath.Join(p.cfg.Paths.StagingDir, "run-"+runID[:8])
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return Result{}, services.Wrap(services.ErrConfiguration, "pipeline", "staging", "create run directory", err)
	}
	if !req.KeepTemp {
		defer os.RemoveAll(runDir)
	} else {
		defer logger.Info("keeping staging artifacts", logging.String("dir", runDir))
	}

	segments, err := p.captions(ctx, req, info, runDir, logger)
	if err != nil {
		return Result{}, err
	}
	report(req.Progress, "segment", 45)

	if req.SRTOut != "" {
		if err := transcript.WriteSRTFile(req.SRTOut, segments); err != nil {
			return Result{}, fmt.Errorf("write srt: %w", err)
		}
		logger.Info("captions exported", logging.String("path", req.SRTOut))
	}

	style, err := render.StyleFromConfig(p.cfg.Style)
	if err != nil {
		return Result{}, err
	}

	report(req.Progress, "render", 45)
	silentPath := filepath.Join(runDir, "silent.mp4")
	stats, err := p.render(ctx, RenderJob{
		FFmpegBinary: p.cfg.FFmpegBinary(),
		Source:       req.Input,
		SilentPath:   silentPath,
		Info:         info,
		Style:        style,
		Segments:     segments,
		Logger:       logger,
		Progress: func(frameIndex, totalFrames int) {
			if totalFrames > 0 {
				report(req.Progress, "render", 45+(45*frameIndex)/totalFrames)
			}
		},
	})
	if err != nil {
		return Result{}, err
	}
	logger.Info("frames rendered",
		logging.Int("written", stats.FramesWritten),
		logging.Int("captioned", stats.FramesCaptioned),
	)

	report(req.Progress, "mux", 90)
	result := Result{Segments: len(segments), Stats: stats, Muxed: true}
	// Hidden temp name in the output directory keeps the container
	// extension so ffmpeg picks the right format.
	tmpOut := filepath.Join(filepath.Dir(req.Output), ".burn-"+filepath.Base(req.Output))
	defer os.Remove(tmpOut)

	if info.HasAudio {
		err = p.muxer.Mux(ctx, mux.Request{
			VideoPath:  silentPath,
			AudioPath:  req.Input,
			OutputPath: tmpOut,
			Language:   p.language(req),
		})
	} else {
		logger.Warn("input has no audio track, output will be silent")
		err = services.Wrap(services.ErrMux, "pipeline", "mux", "no audio track", nil)
	}
	if err != nil {
		if !services.Recoverable(err) {
			return Result{}, err
		}
		if info.HasAudio {
			logger.Warn("mux failed, delivering silent video", logging.Error(err))
		}
		if err := fileutil.CopyFile(silentPath, tmpOut); err != nil {
			return Result{}, services.Wrap(services.ErrMux, "pipeline", "finalize", "promote silent video", err)
		}
		result.Muxed = false
	}

	if err := fileutil.MoveFile(tmpOut, req.Output); err != nil {
		return Result{}, fmt.Errorf("finalize output: %w", err)
	}
	result.Output = req.Output

	report(req.Progress, "complete", 100)
	logger.Info("burn complete",
		logging.String("output", req.Output),
		logging.Int("segments", result.Segments),
		logging.Bool("muxed", result.Muxed),
	)
	return result, nil
}

// Transcribe runs the pipeline up to segmentation and returns the caption
// list without rendering any frames.
func (p *Pipeline) Transcribe(ctx context.Context, req Request) ([]transcript.Segment, error) {
	runID := uuid.NewString()
	logger := p.logger.With(
		logging.String(logging.FieldComponent, "pipeline"),
		logging.String(logging.FieldRunID, runID),
	)

	if strings.TrimSpace(req.Input) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "validate", "input path required", nil)
	}

	info, err := p.probe(ctx, req.Input)
	if err != nil {
		return nil, err
	}
	if err := p.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "staging", "prepare staging directory", err)
	}
	runDir := filepath.Join(p.cfg.Paths.StagingDir, "run-"+runID[:8])
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "staging", "create run directory", err)
	}
	if !req.KeepTemp {
		defer os.RemoveAll(runDir)
	}

	segments, err := p.captions(ctx, req, info, runDir, logger)
	if err != nil {
		return nil, err
	}
	if req.SRTOut != "" {
		if err := transcript.WriteSRTFile(req.SRTOut, segments); err != nil {
			return nil, fmt.Errorf("write srt: %w", err)
		}
		logger.Info("captions exported", logging.String("path", req.SRTOut))
	}
	return segments, nil
}

// captions produces the caption list for the run: either parsed from an
// edited SRT, or transcribed (with cache) and segmented.
func (p *Pipeline) captions(ctx context.Context, req Request, info ffprobe.VideoInfo, runDir string, logger *slog.Logger) ([]transcript.Segment, error) {
	if req.EditedSRT != "" {
		segments, err := transcript.ReadSRTFile(req.EditedSRT)
		if err != nil {
			return nil, fmt.Errorf("read edited srt: %w", err)
		}
		if err := transcript.ValidateAll(segments); err != nil {
			return nil, err
		}
		logger.Info("using edited captions",
			logging.String("path", req.EditedSRT),
			logging.Int("segments", len(segments)),
		)
		return segments, nil
	}

	words, err := p.words(ctx, req, info, runDir, logger)
	if err != nil {
		return nil, err
	}

	maxChars := p.cfg.Segmenter.MaxChars
	if req.MaxChars > 0 {
		maxChars = req.MaxChars
	}
	segments := transcript.SegmentWords(words, transcript.SegmenterOptions{MaxChars: maxChars})
	logger.Info("captions segmented",
		logging.Int("words", len(words)),
		logging.Int("segments", len(segments)),
	)
	return segments, nil
}

func (p *Pipeline) words(ctx context.Context, req Request, info ffprobe.VideoInfo, runDir string, logger *slog.Logger) ([]transcript.Word, error) {
	if !info.HasAudio {
		return nil, services.Wrap(services.ErrAudioExtraction, "pipeline", "transcribe", "input has no audio track", nil)
	}

	lang := p.language(req)
	var fingerprint string
	if p.cache != nil {
		fp, err := transcache.Fingerprint(req.Input)
		if err != nil {
			logger.Warn("transcript cache unavailable", logging.Error(err))
		} else {
			fingerprint = fp
			if words, ok, err := p.cache.Get(ctx, fp, p.cfg.Recognizer.Model, lang); err != nil {
				logger.Warn("transcript cache read failed", logging.Error(err))
			} else if ok {
				logger.Info("transcript cache hit", logging.Int("words", len(words)))
				report(req.Progress, "transcribe", 35)
				return words, nil
			}
		}
	}

	report(req.Progress, "extract", 5)
	audioPath := filepath.Join(runDir, "audio.wav")
	if err := p.extract(ctx, req.Input, audioPath); err != nil {
		return nil, err
	}

	report(req.Progress, "transcribe", 10)
	words, err := p.transcriber.Transcribe(ctx, audioPath, runDir)
	if err != nil {
		return nil, err
	}
	report(req.Progress, "transcribe", 35)

	if p.cache != nil && fingerprint != "" {
		if err := p.cache.Put(ctx, fingerprint, p.cfg.Recognizer.Model, lang, words); err != nil {
			logger.Warn("transcript cache write failed", logging.Error(err))
		}
	}
	return words, nil
}

func (p *Pipeline) language(req Request) string {
	if strings.TrimSpace(req.Language) != "" {
		return req.Language
	}
	return p.cfg.Recognizer.Language
}

func report(fn ProgressFunc, stage string, percent int) {
	if fn != nil {
		fn(stage, percent)
	}
}
