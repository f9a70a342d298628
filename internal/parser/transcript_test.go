package parser

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
)

func TestParseTranscript(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []domain.TranscriptParagraph
	}{
		{
			name: "empty",
			raw:  "",
			want: []domain.TranscriptParagraph{{Content: EmptyTranscriptText}},
		},
		{
			name: "two speakers",
			raw:  "Speaker A: hello\nSpeaker B: hi there",
			want: []domain.TranscriptParagraph{
				{Content: "hello", IsSpeakerLine: true, Speaker: "Speaker A"},
				{Content: "hi there", IsSpeakerLine: true, Speaker: "Speaker B"},
			},
		},
		{
			name: "cjk labels and full-width colon",
			raw:  "發言者A：你好\n讲者 2: 好的\nspeaker c : lower case",
			want: []domain.TranscriptParagraph{
				{Content: "你好", IsSpeakerLine: true, Speaker: "發言者A"},
				{Content: "好的", IsSpeakerLine: true, Speaker: "讲者 2"},
				{Content: "lower case", IsSpeakerLine: true, Speaker: "speaker c"},
			},
		},
		{
			name: "narration and blank lines",
			raw:  "Opening remarks\n\n   \nSpeaker 1: ok",
			want: []domain.TranscriptParagraph{
				{Content: "Opening remarks"},
				{Content: "ok", IsSpeakerLine: true, Speaker: "Speaker 1"},
			},
		},
		{
			name: "unknown label is narration",
			raw:  "Host: welcome",
			want: []domain.TranscriptParagraph{{Content: "Host: welcome"}},
		},
		{
			name: "error marker is one paragraph",
			raw:  "Error generating transcript: upstream 500\nSpeaker A: ignored",
			want: []domain.TranscriptParagraph{{Content: "Error generating transcript: upstream 500\nSpeaker A: ignored"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTranscript(tt.raw)
			if !reflect.DeepEqual(got.Paragraphs, tt.want) {
				t.Errorf("ParseTranscript().Paragraphs = %#v, want %#v", got.Paragraphs, tt.want)
			}
		})
	}
}

func speakerLines(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "Speaker %d: line %d\n", i%2+1, i)
	}
	return b.String()
}

func breaks(tr domain.StructuredTranscript) []int {
	var out []int
	for i, p := range tr.Paragraphs {
		if p.InsertBreakAfter {
			out = append(out, i+1)
		}
	}
	return out
}

func TestParseTranscriptBreaks(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		k    int
		want []int
	}{
		{"eleven lines every five", speakerLines(11), 5, []int{5, 10}},
		{"exactly ten lines no trailing break", speakerLines(10), 5, []int{5}},
		{"custom interval", speakerLines(7), 3, []int{3, 6}},
		{"zero falls back to default", speakerLines(6), 0, []int{5}},
		{"narration never breaks", "a\nb\nc\nd\ne\nf", 5, nil},
		{"short transcript", speakerLines(4), 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := breaks(ParseTranscriptEvery(tt.raw, tt.k))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("breaks = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTranscriptNeverEmpty(t *testing.T) {
	for _, raw := range []string{"", "\n\n", "Error generating transcript: x"} {
		if got := ParseTranscript(raw); len(got.Paragraphs) == 0 {
			t.Errorf("ParseTranscript(%q) returned no paragraphs", raw)
		}
	}
}

func TestParseTranscriptOutputIgnoresMarkers(t *testing.T) {
	got := ParseTranscriptOutput("Skipped classes were the first topic.\nSpeaker A: hi", DefaultBreakInterval)
	want := []domain.TranscriptParagraph{
		{Content: "Skipped classes were the first topic."},
		{Content: "hi", IsSpeakerLine: true, Speaker: "Speaker A"},
	}
	if !reflect.DeepEqual(got.Paragraphs, want) {
		t.Errorf("ParseTranscriptOutput().Paragraphs = %#v, want %#v", got.Paragraphs, want)
	}
}

func TestUnavailableTranscript(t *testing.T) {
	got := UnavailableTranscript("Error generating transcript: quota")
	want := []domain.TranscriptParagraph{{Content: "Error generating transcript: quota"}}
	if !reflect.DeepEqual(got.Paragraphs, want) {
		t.Errorf("UnavailableTranscript().Paragraphs = %#v, want %#v", got.Paragraphs, want)
	}
}
