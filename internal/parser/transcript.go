package parser

import (
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
)

// DefaultBreakInterval is how many paragraphs separate section breaks.
const DefaultBreakInterval = 5

var speakerRe = regexp.MustCompile(`(?i)^((?:speaker|發言者|发言者|講者|讲者)\s*[\p{L}\p{N}_]+)\s*[:：]\s*(.*)$`)

// ParseTranscript builds a StructuredTranscript with the default break interval.
func ParseTranscript(raw string) domain.StructuredTranscript {
	return ParseTranscriptEvery(raw, DefaultBreakInterval)
}

// ParseTranscriptEvery builds a StructuredTranscript, marking a break after
// every k-th paragraph that is a speaker line and not the last one. Text that
// starts with a failure or skip marker becomes a single paragraph.
func ParseTranscriptEvery(raw string, k int) domain.StructuredTranscript {
	if text := strings.TrimSpace(raw); text != "" && IsMarker(text) {
		return UnavailableTranscript(text)
	}
	return ParseTranscriptOutput(raw, k)
}

// ParseTranscriptOutput parses text the model actually returned. It never
// interprets the text as a marker.
func ParseTranscriptOutput(raw string, k int) domain.StructuredTranscript {
	if k <= 0 {
		k = DefaultBreakInterval
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return UnavailableTranscript(EmptyTranscriptText)
	}

	all := lines(text)
	paragraphs := make([]domain.TranscriptParagraph, 0, len(all))
	for i, line := range all {
		p := domain.TranscriptParagraph{Content: line}
		if m := speakerRe.FindStringSubmatch(line); m != nil {
			p.IsSpeakerLine = true
			p.Speaker = strings.TrimSpace(m[1])
			p.Content = strings.TrimSpace(m[2])
		}
		p.InsertBreakAfter = p.IsSpeakerLine && (i+1)%k == 0 && i < len(all)-1
		paragraphs = append(paragraphs, p)
	}

	return domain.StructuredTranscript{Paragraphs: paragraphs}
}

// UnavailableTranscript is the transcript of a step that produced no usable
// text. reason becomes its only paragraph.
func UnavailableTranscript(reason string) domain.StructuredTranscript {
	return domain.StructuredTranscript{Paragraphs: []domain.TranscriptParagraph{{Content: reason}}}
}
