package domain

// Processing modes. They pick which inference steps run and which sections
// the report carries.
const (
	OptionSummary           = "summary"
	OptionSummaryTranscript = "summary_transcript"
	OptionBilingual         = "transcript_bilingual_summary"
)

// Report formats. HTML is always rendered; the rest only on request.
const (
	FormatHTML     = "html"
	FormatMarkdown = "md"
	FormatText     = "txt"
	FormatDocx     = "docx"
)

// Mode is the inference plan derived from a job's output options.
type Mode int

const (
	// ModeSummary generates a transcript as input but reports only the summary.
	ModeSummary Mode = iota
	// ModeSummaryTranscript reports both summary and transcript.
	ModeSummaryTranscript
	// ModeBilingual keeps the original-language transcript and appends an
	// English summary to the translated one.
	ModeBilingual
)

func (m Mode) String() string {
	switch m {
	case ModeSummary:
		return OptionSummary
	case ModeBilingual:
		return OptionBilingual
	default:
		return OptionSummaryTranscript
	}
}

// ModeFor picks the mode for a set of output options. The bilingual option
// wins over the others; with no mode option the summary+transcript mode is used.
func ModeFor(options []string) Mode {
	has := func(want string) bool {
		for _, o := range options {
			if o == want {
				return true
			}
		}
		return false
	}

	switch {
	case has(OptionBilingual):
		return ModeBilingual
	case has(OptionSummaryTranscript):
		return ModeSummaryTranscript
	case has(OptionSummary):
		return ModeSummary
	default:
		return ModeSummaryTranscript
	}
}

// FormatsFor returns the artifact formats to render, primary first.
func FormatsFor(options []string) []string {
	formats := []string{FormatHTML}
	seen := map[string]bool{FormatHTML: true}
	for _, o := range options {
		switch o {
		case FormatMarkdown, FormatText, FormatDocx:
			if !seen[o] {
				seen[o] = true
				formats = append(formats, o)
			}
		}
	}
	return formats
}
