package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// WriteSRT renders segments in SubRip interchange format: a 1-based index
// line, a "start --> end" timecode line, the caption text, and a blank
// separator. Timing survives a round trip to millisecond precision.
func WriteSRT(w io.Writer, segments []Segment) error {
	bw := bufio.NewWriter(w)
	for i, seg := range segments {
		if _, err := fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n",
			i+1, FormatTimecode(seg.StartTime), FormatTimecode(seg.EndTime), seg.Text); err != nil {
			return fmt.Errorf("write srt cue %d: %w", i+1, err)
		}
	}
	return bw.Flush()
}

// WriteSRTFile writes segments to path in SubRip format.
func WriteSRTFile(path string, segments []Segment) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create srt: %w", err)
	}
	if err := WriteSRT(file, segments); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ReadSRT parses SubRip content back into segments. Word-level timing is
// not represented in SRT, so parsed segments carry no Words. Malformed
// blocks are skipped rather than failing the whole file.
func ReadSRT(r io.Reader) ([]Segment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(content), "\n\n")

	var segments []Segment
	for _, block := range blocks {
		seg, ok := parseBlock(block)
		if !ok {
			continue
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// ReadSRTFile parses the SubRip file at path.
func ReadSRTFile(path string) ([]Segment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open srt: %w", err)
	}
	defer file.Close()
	return ReadSRT(file)
}

func parseBlock(block string) (Segment, bool) {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	// Optional index line, then the timecode line, then text.
	idx := 0
	if idx < len(lines) && isNumeric(lines[idx]) {
		idx++
	}
	if idx >= len(lines) || !strings.Contains(lines[idx], "-->") {
		return Segment{}, false
	}
	parts := strings.SplitN(lines[idx], "-->", 2)
	start, errS := ParseTimecode(parts[0])
	end, errE := ParseTimecode(parts[1])
	if errS != nil || errE != nil {
		return Segment{}, false
	}
	idx++

	text := strings.TrimSpace(strings.Join(lines[idx:], "\n"))
	if text == "" {
		return Segment{}, false
	}
	return Segment{Text: text, StartTime: start, EndTime: end}, true
}

// FormatTimecode renders seconds as "HH:MM:SS,mmm" with sub-millisecond
// precision truncated.
func FormatTimecode(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(seconds * 1000)
	millis := total % 1000
	totalSeconds := total / 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d",
		totalSeconds/3600, (totalSeconds/60)%60, totalSeconds%60, millis)
}

// ParseTimecode converts an SRT timecode to seconds. A period before the
// milliseconds is tolerated alongside the standard comma.
func ParseTimecode(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timecode")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timecode %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timecode %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timecode %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

func isNumeric(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	_, err := strconv.Atoi(value)
	return err == nil
}
