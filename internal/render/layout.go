package render

import (
	"strings"

	"golang.org/x/image/font"
)

// MeasureFunc reports the rendered pixel width of a string. The backend
// (font face, fixed-width fake in tests) is the caller's choice; the wrap
// algorithm itself is measurement-agnostic.
type MeasureFunc func(string) int

// FaceMeasure adapts a font face into a MeasureFunc.
func FaceMeasure(face font.Face) MeasureFunc {
	return func(s string) int {
		return font.MeasureString(face, s).Ceil()
	}
}

// WrapText splits caption text into display lines no wider than
// maxWidthPx, filling each line greedily: a word joins the current line
// while the measured line-with-word still fits, otherwise the line is
// flushed and the word starts the next one. A single word wider than the
// limit gets its own line; words are never split. Empty text yields no
// lines.
func WrapText(text string, maxWidthPx int, measure MeasureFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current []string
	for _, word := range words {
		candidate := strings.Join(append(current, word), " ")
		if measure(candidate) <= maxWidthPx {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
		}
		current = []string{word}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}
