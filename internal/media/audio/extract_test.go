package audio

import (
	"context"
	"errors"
	"slices"
	"testing"

	"subburn/internal/services"
)

func TestExtractBuildsRecognizerFriendlyArgs(t *testing.T) {
	var gotName string
	var gotArgs []string
	run := func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	}

	if err := Extract(context.Background(), "ffmpeg", "in.mp4", "out.wav", run); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if gotName != "ffmpeg" {
		t.Errorf("binary = %q", gotName)
	}

	for _, required := range [][]string{
		{"-ac", "1"},
		{"-ar", "16000"},
		{"-c:a", "pcm_s16le"},
		{"-i", "in.mp4"},
	} {
		idx := slices.Index(gotArgs, required[0])
		if idx < 0 || idx+1 >= len(gotArgs) || gotArgs[idx+1] != required[1] {
			t.Errorf("args missing %v: %v", required, gotArgs)
		}
	}
	if gotArgs[len(gotArgs)-1] != "out.wav" {
		t.Errorf("destination should be last arg: %v", gotArgs)
	}
}

func TestExtractFailureWrapsMarker(t *testing.T) {
	run := func(ctx context.Context, name string, args ...string) error {
		return errors.New("no audio stream")
	}
	err := Extract(context.Background(), "", "in.mp4", "out.wav", run)
	if !errors.Is(err, services.ErrAudioExtraction) {
		t.Fatalf("expected ErrAudioExtraction, got %v", err)
	}
}

func TestExtractValidatesPaths(t *testing.T) {
	if err := Extract(context.Background(), "", "", "out.wav", nil); !errors.Is(err, services.ErrAudioExtraction) {
		t.Fatalf("expected error for empty source, got %v", err)
	}
	if err := Extract(context.Background(), "", "in.mp4", "", nil); !errors.Is(err, services.ErrAudioExtraction) {
		t.Fatalf("expected error for empty destination, got %v", err)
	}
}
