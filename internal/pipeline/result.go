package pipeline

import (
	"fmt"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
	"github.com/nguyentantai21042004/audio-report/internal/parser"
)

// Output slots, named after what they hold.
const (
	slotTranscript     = "transcript"
	slotSummary        = "summary"
	slotEnglishSummary = "english summary"
)

type resultKind int

const (
	resultOK resultKind = iota
	resultFailed
	resultSkipped
)

// Result is the outcome of one inference step.
type Result struct {
	kind   resultKind
	text   string
	reason string
}

// OK wraps successful model output.
func OK(text string) Result {
	return Result{kind: resultOK, text: text}
}

// Failed records a step that ran and failed.
func Failed(reason string) Result {
	return Result{kind: resultFailed, reason: reason}
}

// Skipped records a step that did not run because its input was unusable.
func Skipped(reason string) Result {
	return Result{kind: resultSkipped, reason: reason}
}

func (r Result) IsOK() bool {
	return r.kind == resultOK
}

func (r Result) Text() string {
	return r.text
}

func (r Result) Reason() string {
	return r.reason
}

// Summary parses the step output as a summary. A failed or skipped step
// yields a summary whose intro says why, without parsing anything.
func (r Result) Summary(slot string) domain.StructuredSummary {
	if r.IsOK() {
		return parser.ParseSummaryOutput(r.text)
	}
	return parser.UnavailableSummary(r.describe(slot))
}

// Transcript parses the step output as a transcript with a break every k
// speaker paragraphs. A failed or skipped step yields one explanatory
// paragraph.
func (r Result) Transcript(slot string, k int) domain.StructuredTranscript {
	if r.IsOK() {
		return parser.ParseTranscriptOutput(r.text, k)
	}
	return parser.UnavailableTranscript(r.describe(slot))
}

// describe is the model output of a successful step, otherwise a line
// explaining why there is none.
func (r Result) describe(slot string) string {
	switch r.kind {
	case resultFailed:
		return fmt.Sprintf("%s %s: %s", parser.ErrorMarker, slot, r.Reason())
	case resultSkipped:
		return fmt.Sprintf("%s %s: %s", parser.SkipMarker, slot, r.Reason())
	default:
		return r.text
	}
}

// Results holds every step outcome of one job by slot.
type Results map[string]Result

// get returns the outcome for slot. A slot that never ran reads as empty
// output.
func (rs Results) get(slot string) Result {
	if r, ok := rs[slot]; ok {
		return r
	}
	return OK("")
}
