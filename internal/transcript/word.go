package transcript

import (
	"log/slog"
	"strings"

	"subburn/internal/logging"
	"subburn/internal/services"
)

// Word is a single recognized token with its spoken time span in seconds.
// Words arrive from the recognizer in non-decreasing Start order and are
// immutable once created.
type Word struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// NormalizeWords cleans a recognized word stream: empty-text entries are
// dropped and entries whose start exceeds their end are logged and skipped.
// Returns ErrEmptyTranscript when nothing usable remains, which callers
// should surface as "no speech detected" rather than a crash.
func NormalizeWords(words []Word, logger *slog.Logger) ([]Word, error) {
	cleaned := make([]Word, 0, len(words))
	for _, word := range words {
		if strings.TrimSpace(word.Text) == "" {
			continue
		}
		if word.Start > word.End {
			if logger != nil {
				logger.Warn("skipping word with inverted timestamps",
					logging.String("word", word.Text),
					logging.Float64("start", word.Start),
					logging.Float64("end", word.End),
				)
			}
			continue
		}
		word.Text = strings.TrimSpace(word.Text)
		cleaned = append(cleaned, word)
	}
	if len(cleaned) == 0 {
		return nil, services.Wrap(services.ErrEmptyTranscript, "transcript", "normalize", "no usable words", nil)
	}
	return cleaned, nil
}
