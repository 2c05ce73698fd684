package timeline

import (
	"testing"

	"subburn/internal/transcript"
)

func sortedSegments() []transcript.Segment {
	return []transcript.Segment{
		{Text: "First.", StartTime: 0.0, EndTime: 1.0},
		{Text: "Second.", StartTime: 1.5, EndTime: 2.5},
		{Text: "Third.", StartTime: 2.5, EndTime: 4.0},
	}
}

func TestCursorSequentialScan(t *testing.T) {
	cursor := NewCursor(sortedSegments())

	tests := []struct {
		t    float64
		want string // empty means no active caption
	}{
		{0.0, "First."},
		{0.5, "First."},
		{0.999, "First."},
		{1.0, ""}, // half-open: inactive at its own end time
		{1.2, ""}, // gap between captions
		{1.5, "Second."},
		{2.5, "Third."}, // second ends exactly as third begins
		{3.9, "Third."},
		{4.0, ""},
		{10.0, ""},
	}

	for _, tt := range tests {
		got := cursor.Advance(tt.t)
		switch {
		case tt.want == "" && got != nil:
			t.Errorf("Advance(%v) = %q, want none", tt.t, got.Text)
		case tt.want != "" && got == nil:
			t.Errorf("Advance(%v) = none, want %q", tt.t, tt.want)
		case tt.want != "" && got.Text != tt.want:
			t.Errorf("Advance(%v) = %q, want %q", tt.t, got.Text, tt.want)
		}
	}
}

func TestCursorStartBoundaryActive(t *testing.T) {
	segments := sortedSegments()
	cursor := NewCursor(segments)
	if got := cursor.Advance(segments[1].StartTime); got == nil || got.Text != "Second." {
		t.Fatalf("segment must be active at its start time, got %v", got)
	}
}

func TestCursorForwardScanWinsOnEditedList(t *testing.T) {
	// An editor moved the second caption before the first and left an
	// overlap. Forward-only advancement skips windows already passed by
	// the cursor: the last segment reached by the scan wins.
	edited := []transcript.Segment{
		{Text: "Late.", StartTime: 2.0, EndTime: 3.0},
		{Text: "Early.", StartTime: 0.0, EndTime: 1.0},
		{Text: "Overlap.", StartTime: 2.5, EndTime: 3.5},
	}
	cursor := NewCursor(edited)

	if got := cursor.Advance(0.5); got != nil {
		// t < Late.StartTime, so the scan has not reached Early yet.
		t.Fatalf("Advance(0.5) = %q, want none", got.Text)
	}
	if got := cursor.Advance(2.0); got == nil || got.Text != "Late." {
		t.Fatalf("Advance(2.0) = %v, want Late.", got)
	}
	if got := cursor.Advance(3.0); got == nil || got.Text != "Overlap." {
		// Late's window closed; Early's window is already in the past and
		// is skipped by the forward scan.
		t.Fatalf("Advance(3.0) = %v, want Overlap.", got)
	}
}

func TestCursorReset(t *testing.T) {
	cursor := NewCursor(sortedSegments())
	cursor.Advance(3.0)
	cursor.Reset()
	if got := cursor.Advance(0.0); got == nil || got.Text != "First." {
		t.Fatalf("after Reset, Advance(0) = %v, want First.", got)
	}
}

func TestCursorEmptyList(t *testing.T) {
	cursor := NewCursor(nil)
	if got := cursor.Advance(0); got != nil {
		t.Fatalf("empty list should never return a segment, got %v", got)
	}
}

func TestLookupMatchesCursorOnSortedList(t *testing.T) {
	segments := sortedSegments()
	cursor := NewCursor(segments)

	for step := 0; step <= 450; step++ {
		when := float64(step) * 0.01
		fromCursor := cursor.Advance(when)
		fromLookup := Lookup(segments, when)
		switch {
		case fromCursor == nil && fromLookup != nil:
			t.Fatalf("t=%v: cursor none, lookup %q", when, fromLookup.Text)
		case fromCursor != nil && fromLookup == nil:
			t.Fatalf("t=%v: cursor %q, lookup none", when, fromCursor.Text)
		case fromCursor != nil && fromCursor.Text != fromLookup.Text:
			t.Fatalf("t=%v: cursor %q, lookup %q", when, fromCursor.Text, fromLookup.Text)
		}
	}
}

func TestLookupBoundaries(t *testing.T) {
	segments := sortedSegments()
	if got := Lookup(segments, 0.0); got == nil || got.Text != "First." {
		t.Errorf("Lookup at start time = %v, want First.", got)
	}
	if got := Lookup(segments, 1.0); got != nil {
		t.Errorf("Lookup at end time = %q, want none", got.Text)
	}
	if got := Lookup(segments, -0.5); got != nil {
		t.Errorf("Lookup before first segment = %q, want none", got.Text)
	}
	if got := Lookup(nil, 1.0); got != nil {
		t.Errorf("Lookup on empty list = %q, want none", got.Text)
	}
}
