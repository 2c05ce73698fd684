package transcript

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultMaxChars is the caption length budget applied when the caller
// does not supply one.
const DefaultMaxChars = 60

// DefaultTerminators are the sentence-ending runes recognized during
// caption post-processing.
const DefaultTerminators = ".!?"

// SegmenterOptions tune caption segmentation.
type SegmenterOptions struct {
	// MaxChars caps segment text length. A new segment starts when appending
	// the next word would push the accumulated text past this budget;
	// landing exactly on it is allowed.
	MaxChars int
	// Terminators is the set of runes accepted as sentence endings. Segments
	// not ending in one get a "." appended.
	Terminators string
}

func (o SegmenterOptions) withDefaults() SegmenterOptions {
	if o.MaxChars <= 0 {
		o.MaxChars = DefaultMaxChars
	}
	if o.Terminators == "" {
		o.Terminators = DefaultTerminators
	}
	return o
}

var leadingUpper = cases.Upper(language.Und)

// SegmentWords groups a cleaned word stream into caption segments using
// greedy left-to-right bin packing: words accumulate until the next one
// would overflow MaxChars, then the segment closes and a new one begins.
// A single word longer than MaxChars still becomes its own segment; words
// are never split. The result is a pure function of (words, options), so
// identical input always yields identical output.
func SegmentWords(words []Word, opts SegmenterOptions) []Segment {
	opts = opts.withDefaults()
	if len(words) == 0 {
		return nil
	}

	var segments []Segment
	var current Segment
	for _, word := range words {
		// The accumulated text carries a trailing separator, so this compares
		// the full candidate line against the budget. Equality is allowed.
		if len(current.Words) > 0 && len(current.Text)+len(word.Text) > opts.MaxChars {
			segments = append(segments, current)
			current = Segment{}
		}
		if len(current.Words) == 0 {
			current.StartTime = word.Start
		}
		current.Text += word.Text + " "
		current.Words = append(current.Words, word)
		current.EndTime = word.End
	}
	if len(current.Words) > 0 {
		segments = append(segments, current)
	}

	for i := range segments {
		finishSegment(&segments[i], opts.Terminators)
	}
	return segments
}

// finishSegment applies the display normalization every caption receives:
// trimmed whitespace, an upper-cased leading rune, and a terminating
// sentence mark.
func finishSegment(seg *Segment, terminators string) {
	seg.Text = strings.TrimSpace(seg.Text)
	if seg.Text == "" {
		return
	}
	first, size := utf8.DecodeRuneInString(seg.Text)
	if first != utf8.RuneError {
		seg.Text = leadingUpper.String(seg.Text[:size]) + seg.Text[size:]
	}
	last, _ := utf8.DecodeLastRuneInString(seg.Text)
	if !strings.ContainsRune(terminators, last) {
		seg.Text += "."
	}
}
