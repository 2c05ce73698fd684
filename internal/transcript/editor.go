package transcript

import (
	"fmt"
	"strings"

	"subburn/internal/services"
)

// Default display window for a freshly inserted caption, relative to the
// end of the current last segment.
const (
	insertGapSeconds      = 0.5
	insertDurationSeconds = 3.0
)

// ApplyEdit replaces the text and timing of the segment at index after
// validating the result. Invalid edits are rejected with ErrInvalidSegment
// and leave the list untouched. The segment's words are kept as-is; they
// describe the original recognition, not the edited text.
func ApplyEdit(segments []Segment, index int, text string, start, end float64) error {
	if index < 0 || index >= len(segments) {
		return services.Wrap(services.ErrInvalidSegment, "transcript", "edit",
			fmt.Sprintf("segment index %d out of range", index), nil)
	}
	edited := segments[index]
	edited.Text = strings.TrimSpace(text)
	edited.StartTime = start
	edited.EndTime = end
	if err := edited.Validate(); err != nil {
		return err
	}
	segments[index] = edited
	return nil
}

// Delete removes the segment at index.
func Delete(segments []Segment, index int) ([]Segment, error) {
	if index < 0 || index >= len(segments) {
		return segments, services.Wrap(services.ErrInvalidSegment, "transcript", "delete",
			fmt.Sprintf("segment index %d out of range", index), nil)
	}
	return append(segments[:index], segments[index+1:]...), nil
}

// Insert appends a new caption with a default window shortly after the
// last existing segment.
func Insert(segments []Segment, text string) []Segment {
	var lastEnd float64
	if len(segments) > 0 {
		lastEnd = segments[len(segments)-1].EndTime
	}
	text = strings.TrimSpace(text)
	if text == "" {
		text = "New caption"
	}
	return append(segments, Segment{
		Text:      text,
		StartTime: lastEnd + insertGapSeconds,
		EndTime:   lastEnd + insertGapSeconds + insertDurationSeconds,
	})
}

// ValidateAll checks every segment in an edited list. The renderer accepts
// unsorted and overlapping windows, but each segment must individually
// satisfy its invariants.
func ValidateAll(segments []Segment) error {
	for i, seg := range segments {
		if err := seg.Validate(); err != nil {
			return fmt.Errorf("segment %d: %w", i+1, err)
		}
	}
	return nil
}
