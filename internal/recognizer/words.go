package recognizer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"subburn/internal/transcript"
)

type payloadWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type payloadSegment struct {
	Text  string        `json:"text"`
	Start float64       `json:"start"`
	End   float64       `json:"end"`
	Words []payloadWord `json:"words"`
}

type payload struct {
	Segments []payloadSegment `json:"segments"`
}

// ParseWords reads a whisperx JSON transcript and flattens every segment's
// word list into a single ordered slice. Words lacking timestamps keep
// their zero values; normalization downstream decides what to drop.
func ParseWords(path string) ([]transcript.Word, error) {
	if strings.TrimSpace(path) == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc payload
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse transcript json: %w", err)
	}
	var words []transcript.Word
	for _, seg := range doc.Segments {
		for _, w := range seg.Words {
			words = append(words, transcript.Word{
				Text:  w.Word,
				Start: w.Start,
				End:   w.End,
			})
		}
	}
	return words, nil
}
