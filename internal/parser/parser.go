// Package parser turns the semi-structured text returned by the model into
// report structures. Every function is total: malformed or empty input
// yields a structure that says why it is empty.
package parser

import "strings"

// Placeholders used when the model returned nothing.
const (
	EmptySummaryIntro   = "No summary content received or summary was empty."
	EmptyTranscriptText = "No transcript content received or transcript was empty."
)

// Marker prefixes a generation step writes in place of real output when it
// failed or was skipped.
const (
	ErrorMarker = "Error generating"
	SkipMarker  = "Skipped"
)

// IsMarker reports whether text is a failure or skip marker rather than
// model output.
func IsMarker(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, ErrorMarker) || strings.HasPrefix(t, SkipMarker)
}

// lines splits raw into trimmed, non-empty lines.
func lines(raw string) []string {
	var out []string
	for _, l := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
