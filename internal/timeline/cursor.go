package timeline

import (
	"sort"

	"subburn/internal/transcript"
)

// Cursor maps non-decreasing playback times to the active caption with a
// single forward scan over the segment list. Amortized cost across a full
// render pass is O(len(segments)) regardless of frame count.
//
// The cursor assumes query times never go backwards. On lists an editor
// has reordered or overlapped, the forward-only scan means the last
// segment reached wins; a segment whose window already passed relative to
// the cursor is skipped, not revisited.
type Cursor struct {
	segments []transcript.Segment
	index    int
}

// NewCursor positions a cursor at the start of segments. The list is
// consumed read-only and must not be mutated during the render pass.
func NewCursor(segments []transcript.Segment) *Cursor {
	return &Cursor{segments: segments}
}

// Advance moves the cursor to the playback time t and returns the active
// segment, or nil when t falls in a gap between captions. Windows are
// half-open: a segment is active at its start time and inactive at its
// end time.
func (c *Cursor) Advance(t float64) *transcript.Segment {
	for c.index < len(c.segments) && t >= c.segments[c.index].EndTime {
		c.index++
	}
	if c.index < len(c.segments) && t >= c.segments[c.index].StartTime {
		return &c.segments[c.index]
	}
	return nil
}

// Reset rewinds the cursor for another pass over the same list.
func (c *Cursor) Reset() {
	c.index = 0
}

// Lookup finds the active segment for an arbitrary query time by binary
// search: the latest segment whose start does not exceed t, checked
// against its end. Unlike Cursor it carries no state, so parallel frame
// workers can each call it against the shared immutable list. Requires
// segments sorted by StartTime and non-overlapping.
func Lookup(segments []transcript.Segment, t float64) *transcript.Segment {
	i := sort.Search(len(segments), func(i int) bool {
		return segments[i].StartTime > t
	})
	if i == 0 {
		return nil
	}
	candidate := &segments[i-1]
	if t < candidate.EndTime {
		return candidate
	}
	return nil
}
