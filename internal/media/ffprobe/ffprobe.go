package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"subburn/internal/services"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	NBFrames   string `json:"nb_frames"`
	Duration   string `json:"duration"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

// VideoInfo summarizes what the render pipeline needs to know about a
// source video.
type VideoInfo struct {
	Width       int
	Height      int
	FPS         float64
	TotalFrames int // 0 when the container does not report a frame count
	Duration    float64
	HasAudio    bool
}

// Runner executes the ffprobe binary and returns its stdout. Tests inject
// canned JSON through this.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func defaultRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		detail := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("%s: %w: %s", name, err, detail)
	}
	return output, nil
}

// Inspect executes ffprobe against the provided path and decodes the JSON
// response. A missing input surfaces as ErrInputNotFound.
func Inspect(ctx context.Context, binary, path string, run Runner) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, services.Wrap(services.ErrInputNotFound, "ffprobe", "inspect", "empty path", nil)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, services.Wrap(services.ErrInputNotFound, "ffprobe", "inspect", path, err)
		}
		return Result{}, fmt.Errorf("stat input: %w", err)
	}
	if run == nil {
		run = defaultRunner
	}

	output, err := run(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// Video extracts the render-relevant parameters from an inspection result.
func (r Result) Video() (VideoInfo, error) {
	stream, ok := r.videoStream()
	if !ok {
		return VideoInfo{}, errors.New("no video stream found")
	}

	fps, err := ParseFrameRate(stream.RFrameRate)
	if err != nil {
		return VideoInfo{}, err
	}

	info := VideoInfo{
		Width:    stream.Width,
		Height:   stream.Height,
		FPS:      fps,
		Duration: parseFloat(r.Format.Duration),
		HasAudio: r.AudioStreamCount() > 0,
	}
	if frames, err := strconv.Atoi(strings.TrimSpace(stream.NBFrames)); err == nil {
		info.TotalFrames = frames
	} else if info.Duration > 0 {
		info.TotalFrames = int(info.Duration * fps)
	}

	if info.Width <= 0 || info.Height <= 0 {
		return VideoInfo{}, fmt.Errorf("invalid video dimensions %dx%d", info.Width, info.Height)
	}
	return info, nil
}

func (r Result) videoStream() (Stream, bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			return stream, true
		}
	}
	return Stream{}, false
}

// AudioStreamCount returns the number of audio streams discovered.
func (r Result) AudioStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			count++
		}
	}
	return count
}

// ParseFrameRate converts ffprobe's fractional frame rate ("30000/1001")
// to frames per second.
func ParseFrameRate(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, errors.New("empty frame rate")
	}
	num, den, found := strings.Cut(value, "/")
	numerator, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate %q", value)
	}
	if !found {
		if numerator <= 0 {
			return 0, fmt.Errorf("invalid frame rate %q", value)
		}
		return numerator, nil
	}
	denominator, err := strconv.ParseFloat(den, 64)
	if err != nil || denominator == 0 {
		return 0, fmt.Errorf("invalid frame rate %q", value)
	}
	fps := numerator / denominator
	if fps <= 0 {
		return 0, fmt.Errorf("invalid frame rate %q", value)
	}
	return fps, nil
}

func parseFloat(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return parsed
}
