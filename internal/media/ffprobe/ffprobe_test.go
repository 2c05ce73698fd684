package ffprobe

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"subburn/internal/services"
)

const sampleJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1920,
      "height": 1080,
      "r_frame_rate": "30000/1001",
      "nb_frames": "7200"
    },
    {
      "index": 1,
      "codec_name": "aac",
      "codec_type": "audio",
      "sample_rate": "48000",
      "channels": 2
    }
  ],
  "format": {
    "filename": "input.mp4",
    "nb_streams": 2,
    "duration": "240.240000",
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2"
  }
}`

func cannedRunner(output string) Runner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte(output), nil
	}
}

func touch(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.mp4")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write stub file: %v", err)
	}
	return path
}

func TestInspectParsesStreams(t *testing.T) {
	result, err := Inspect(context.Background(), "", touch(t), cannedRunner(sampleJSON))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}

	info, err := result.Video()
	if err != nil {
		t.Fatalf("Video: %v", err)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("dimensions = %dx%d", info.Width, info.Height)
	}
	if math.Abs(info.FPS-29.97002997) > 0.0001 {
		t.Errorf("fps = %v", info.FPS)
	}
	if info.TotalFrames != 7200 {
		t.Errorf("total frames = %d", info.TotalFrames)
	}
	if !info.HasAudio {
		t.Error("audio stream not detected")
	}
	if math.Abs(info.Duration-240.24) > 0.001 {
		t.Errorf("duration = %v", info.Duration)
	}
}

func TestInspectMissingInput(t *testing.T) {
	_, err := Inspect(context.Background(), "", filepath.Join(t.TempDir(), "nope.mp4"), cannedRunner(sampleJSON))
	if !errors.Is(err, services.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
}

func TestVideoNoVideoStream(t *testing.T) {
	result, err := Inspect(context.Background(), "", touch(t),
		cannedRunner(`{"streams":[{"codec_type":"audio"}],"format":{}}`))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if _, err := result.Video(); err == nil {
		t.Fatal("expected error for missing video stream")
	}
}

func TestVideoFrameCountFallsBackToDuration(t *testing.T) {
	payload := `{
  "streams": [{"codec_type": "video", "width": 640, "height": 480, "r_frame_rate": "25/1"}],
  "format": {"duration": "10.0"}
}`
	result, err := Inspect(context.Background(), "", touch(t), cannedRunner(payload))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	info, err := result.Video()
	if err != nil {
		t.Fatalf("Video: %v", err)
	}
	if info.TotalFrames != 250 {
		t.Errorf("frames = %d, want 250 (duration * fps)", info.TotalFrames)
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"25/1", 25, false},
		{"30000/1001", 29.97002997, false},
		{"24", 24, false},
		{"0/0", 0, true},
		{"", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFrameRate(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFrameRate(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFrameRate(%q): %v", tt.input, err)
			continue
		}
		if math.Abs(got-tt.want) > 0.0001 {
			t.Errorf("ParseFrameRate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
