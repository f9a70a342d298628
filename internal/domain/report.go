package domain

// SummaryItem is one numbered key point of a summary.
type SummaryItem struct {
	Subtitle string   `json:"subtitle"`
	Details  []string `json:"details"`
}

// StructuredSummary is the parsed form of a generated summary.
type StructuredSummary struct {
	IntroParagraph  string           `json:"intro_paragraph"`
	Items           []SummaryItem    `json:"items"`
	BilingualAppend *AppendedSummary `json:"bilingual_append,omitempty"`
}

// AppendedSummary is a second parsed summary shown after the main items
// under its own title, such as the English summary of a bilingual report.
type AppendedSummary struct {
	Title          string        `json:"title"`
	IntroParagraph string        `json:"intro_paragraph"`
	Items          []SummaryItem `json:"items"`
}

// TranscriptParagraph is one line of a generated transcript.
type TranscriptParagraph struct {
	Content          string `json:"content"`
	IsSpeakerLine    bool   `json:"is_speaker_line"`
	Speaker          string `json:"speaker,omitempty"`
	InsertBreakAfter bool   `json:"insert_break_after"`
}

// StructuredTranscript is the parsed form of a generated transcript.
type StructuredTranscript struct {
	BilingualPrepend string                `json:"bilingual_prepend,omitempty"`
	Paragraphs       []TranscriptParagraph `json:"paragraphs"`
}
