package transcript

import (
	"strings"

	"subburn/internal/services"
)

// Segment is one caption: display text, the words it was built from, and
// the time window during which it is shown. Segments produced by
// SegmentWords are ordered by StartTime and non-overlapping; an external
// editor may hand back lists that are neither, which the timeline cursor
// tolerates.
type Segment struct {
	Text      string  `json:"text"`
	Words     []Word  `json:"words,omitempty"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// Validate checks the invariants enforced at the edit boundary: non-empty
// trimmed text and StartTime strictly before EndTime.
func (s Segment) Validate() error {
	if strings.TrimSpace(s.Text) == "" {
		return services.Wrap(services.ErrInvalidSegment, "transcript", "validate", "segment text is empty", nil)
	}
	if s.StartTime >= s.EndTime {
		return services.Wrap(services.ErrInvalidSegment, "transcript", "validate", "segment start must precede end", nil)
	}
	return nil
}

// Duration returns the display window length in seconds.
func (s Segment) Duration() float64 {
	return s.EndTime - s.StartTime
}
