package parser

import (
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
)

// headingRe matches "**Topic**", "<strong>Topic</strong>", either optionally
// numbered outside the emphasis and optionally followed by a colon.
var headingRe = regexp.MustCompile(`^(\d+\.\s*)?(?:\*\*(.+?)\*\*|<strong>(.+?)</strong>)\s*[:：]?$`)

var detailMarkers = []string{"- ", "* ", "• "}

// ParseSummary builds a StructuredSummary from raw text. Text that starts
// with a failure or skip marker becomes the intro unchanged.
func ParseSummary(raw string) domain.StructuredSummary {
	if text := strings.TrimSpace(raw); text != "" && IsMarker(text) {
		return UnavailableSummary(text)
	}
	return ParseSummaryOutput(raw)
}

// ParseSummaryOutput parses text the model actually returned. It never
// interprets the text as a marker.
func ParseSummaryOutput(raw string) domain.StructuredSummary {
	text := strings.TrimSpace(raw)
	if text == "" {
		return UnavailableSummary(EmptySummaryIntro)
	}

	var intro string
	items := []domain.SummaryItem{}
	var current *domain.SummaryItem

	for _, line := range lines(text) {
		if subtitle, ok := matchHeading(line); ok {
			items = append(items, domain.SummaryItem{Subtitle: subtitle, Details: []string{}})
			current = &items[len(items)-1]
			continue
		}

		if current == nil {
			// Only the first line before any heading is the intro.
			if intro == "" {
				intro = line
			}
			continue
		}

		if detail, ok := matchDetail(line); ok {
			current.Details = append(current.Details, detail)
			continue
		}

		if n := len(current.Details); n > 0 {
			current.Details[n-1] += "\n" + line
		} else {
			current.Details = append(current.Details, line)
		}
	}

	return domain.StructuredSummary{IntroParagraph: intro, Items: items}
}

// UnavailableSummary is the summary of a step that produced no usable text.
// reason becomes the intro.
func UnavailableSummary(reason string) domain.StructuredSummary {
	return domain.StructuredSummary{IntroParagraph: reason, Items: []domain.SummaryItem{}}
}

func matchHeading(line string) (string, bool) {
	m := headingRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	subtitle := m[2]
	if subtitle == "" {
		subtitle = m[3]
	}
	subtitle = strings.TrimSpace(subtitle)
	if subtitle == "" {
		return "", false
	}
	if m[1] != "" {
		subtitle = strings.TrimSpace(m[1]) + " " + subtitle
	}
	return subtitle, true
}

func matchDetail(line string) (string, bool) {
	for _, marker := range detailMarkers {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):]), true
		}
	}
	return "", false
}
