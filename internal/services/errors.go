package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInputNotFound indicates the source media file does not exist.
	ErrInputNotFound = errors.New("input not found")
	// ErrAudioExtraction indicates the audio extraction backend failed.
	ErrAudioExtraction = errors.New("audio extraction error")
	// ErrEmptyTranscript indicates the recognizer produced no usable words.
	ErrEmptyTranscript = errors.New("empty transcript")
	// ErrInvalidSegment indicates an edited segment violates its invariants.
	ErrInvalidSegment = errors.New("invalid segment")
	// ErrFrameSource indicates a frame read failure during a render pass.
	ErrFrameSource = errors.New("frame source error")
	// ErrMux marks an audio/video remux failure. Recoverable: the pipeline
	// may fall back to emitting silent video.
	ErrMux = errors.New("mux error")
	// ErrConfiguration indicates invalid or missing configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool indicates an external binary failed in a way that does
	// not map to a more specific marker.
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Recoverable reports whether the pipeline may continue past the error with
// a degraded result rather than aborting the run.
func Recoverable(err error) bool {
	return errors.Is(err, ErrMux)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
