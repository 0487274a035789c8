package entities

import (
	"fmt"
	"strings"
)

// Segment is one speaker turn of a transcribed recording. Start and End are
// seconds from the beginning of the audio.
type Segment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker"`
}

// Line renders the segment as "[mm:ss] Speaker X: text".
func (s Segment) Line() string {
	secs := int(s.Start)
	speaker := s.Speaker
	if speaker == "" {
		speaker = "?"
	}
	return fmt.Sprintf("[%02d:%02d] Speaker %s: %s", secs/60, secs%60, speaker, strings.TrimSpace(s.Text))
}

// FormatSegments joins segments into the speaker-labelled transcript text
// handed to the summary extractor.
func FormatSegments(segments []Segment) string {
	lines := make([]string, 0, len(segments))
	for _, s := range segments {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		lines = append(lines, s.Line())
	}
	return strings.Join(lines, "\n")
}
