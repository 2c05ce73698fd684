package transcript

import (
	"errors"
	"testing"

	"subburn/internal/services"
)

func editableSegments() []Segment {
	return []Segment{
		{Text: "One.", StartTime: 0, EndTime: 1},
		{Text: "Two.", StartTime: 1, EndTime: 2},
	}
}

func TestApplyEdit(t *testing.T) {
	segments := editableSegments()
	if err := ApplyEdit(segments, 1, "  Rewritten.  ", 1.2, 2.4); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	if segments[1].Text != "Rewritten." {
		t.Errorf("text = %q", segments[1].Text)
	}
	if segments[1].StartTime != 1.2 || segments[1].EndTime != 2.4 {
		t.Errorf("span = [%v, %v]", segments[1].StartTime, segments[1].EndTime)
	}
}

func TestApplyEditRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start float64
		end   float64
	}{
		{"empty text", "   ", 0, 1},
		{"start equals end", "Text.", 1, 1},
		{"start after end", "Text.", 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := editableSegments()
			err := ApplyEdit(segments, 0, tt.text, tt.start, tt.end)
			if !errors.Is(err, services.ErrInvalidSegment) {
				t.Fatalf("expected ErrInvalidSegment, got %v", err)
			}
			if segments[0].Text != "One." {
				t.Error("rejected edit must leave the segment untouched")
			}
		})
	}
}

func TestApplyEditOutOfRange(t *testing.T) {
	segments := editableSegments()
	if err := ApplyEdit(segments, 5, "Text.", 0, 1); !errors.Is(err, services.ErrInvalidSegment) {
		t.Fatalf("expected ErrInvalidSegment for bad index, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	segments, err := Delete(editableSegments(), 0)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(segments) != 1 || segments[0].Text != "Two." {
		t.Fatalf("unexpected remainder: %+v", segments)
	}

	if _, err := Delete(segments, 3); !errors.Is(err, services.ErrInvalidSegment) {
		t.Fatalf("expected ErrInvalidSegment for bad index, got %v", err)
	}
}

func TestInsertDefaultWindow(t *testing.T) {
	segments := Insert(editableSegments(), "Appended.")
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	added := segments[2]
	if added.StartTime != 2.5 || added.EndTime != 5.5 {
		t.Errorf("default window = [%v, %v], want [2.5, 5.5]", added.StartTime, added.EndTime)
	}

	fromEmpty := Insert(nil, "")
	if len(fromEmpty) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(fromEmpty))
	}
	if err := fromEmpty[0].Validate(); err != nil {
		t.Errorf("inserted segment should validate: %v", err)
	}
}

func TestValidateAll(t *testing.T) {
	ok := editableSegments()
	if err := ValidateAll(ok); err != nil {
		t.Fatalf("ValidateAll: %v", err)
	}

	bad := append(ok, Segment{Text: "", StartTime: 0, EndTime: 1})
	if err := ValidateAll(bad); !errors.Is(err, services.ErrInvalidSegment) {
		t.Fatalf("expected ErrInvalidSegment, got %v", err)
	}
}
