package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
	"github.com/nguyentantai21042004/audio-report/internal/logger"
	"github.com/nguyentantai21042004/audio-report/internal/parser"
)

func sampleReport() *Report {
	summary := parser.ParseSummary("Overview of the call\n**Budget**\n- cut 10%\n- review <monthly>\n**Hiring**")
	summary.BilingualAppend = &domain.AppendedSummary{
		Title:          "English Summary",
		IntroParagraph: "English summary here",
		Items:          []domain.SummaryItem{{Subtitle: "Costs", Details: []string{"travel down"}}},
	}
	transcript := parser.ParseTranscriptEvery("Speaker A: hi\nSpeaker B: hello\nnarration line", 2)
	return &Report{
		Title:       "AI report for 'call.mp3'",
		SourceName:  "call.mp3",
		ModelID:     "gemini-2.5-flash",
		Summary:     &summary,
		Transcript:  &transcript,
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestHTMLFragment(t *testing.T) {
	got, err := HTMLRenderer{}.Fragment(sampleReport())
	if err != nil {
		t.Fatalf("Fragment() error = %v", err)
	}

	for _, want := range []string{
		"Overview of the call",
		"<strong>1. Budget</strong>",
		"<strong>2. Hiring</strong>",
		"<li>review &lt;monthly&gt;</li>",
		"<strong>Speaker A:</strong> hi",
		`<hr class="transcript-divider">`,
		"English summary here",
		"<h3>English Summary</h3>",
		"<strong>1. Costs</strong>",
		"<li>travel down</li>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Fragment() missing %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "<!DOCTYPE") {
		t.Error("Fragment() should not contain the page shell")
	}
}

func TestHTMLFragmentOmitsMissingSections(t *testing.T) {
	r := sampleReport()
	r.Transcript = nil

	got, err := HTMLRenderer{}.Fragment(r)
	if err != nil {
		t.Fatalf("Fragment() error = %v", err)
	}
	if strings.Contains(got, "report-transcript") {
		t.Error("Fragment() rendered a transcript section without a transcript")
	}
}

func TestMarkdown(t *testing.T) {
	got := Markdown(sampleReport())

	for _, want := range []string{
		"# AI report for 'call.mp3'\n",
		"## Key Summary\n\nOverview of the call\n\n",
		"### 1. Budget\n- cut 10%\n- review <monthly>\n",
		"### 2. Hiring\n",
		"**Speaker A:** hi\n\n",
		"narration line\n\n",
		"## English Summary\n\nEnglish summary here\n\n### 1. Costs\n- travel down\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Markdown() missing %q\n%s", want, got)
		}
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText(sampleReport())

	for _, want := range []string{
		"Key Summary\n--------------------\n",
		"1. Budget\n  - cut 10%\n",
		"Speaker B: hello\n\n",
		"English Summary\n--------------------\nEnglish summary here\n\n1. Costs\n  - travel down\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("PlainText() missing %q\n%s", want, got)
		}
	}
}

func TestSanitizeBaseName(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"my talk.mp3", 30, "my_talk.mp3"},
		{`a/b\c:d*e?f"g<h>i|j&k`, 50, "a_b_c_d_e_f_g_h_i_j_k"},
		{"  spaced   out  ", 50, "spaced_out"},
		{".hidden", 50, "_hidden"},
		{"", 50, "untitled_audio"},
		{"///", 50, "untitled_audio"},
		{"會議記錄會議記錄", 4, "會議記錄"},
	}

	for _, tt := range tests {
		if got := SanitizeBaseName(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("SanitizeBaseName(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestBaseName(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 8, 7, 0, time.UTC)
	got := BaseName("weekly sync.mp3", "models/gemini-2.5-pro", at)
	want := "weekly_sync.mp3_gemini-2.5-pro_20240301090807"
	if got != want {
		t.Errorf("BaseName() = %q, want %q", got, want)
	}
}

type failingRenderer struct{ format string }

func (f failingRenderer) Format() string { return f.format }

func (f failingRenderer) Render(*Report, string) error { return errors.New("disk full") }

type recordingMirror struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (m *recordingMirror) Put(_ context.Context, _, objectName, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, objectName)
	return m.err
}

func TestWriterWrite(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option
		formats   []string
		wantLinks []string
		wantErr   bool
	}{
		{
			name:      "html only",
			formats:   []string{"html"},
			wantLinks: []string{"html"},
		},
		{
			name:      "all text formats",
			formats:   []string{"html", "md", "txt"},
			wantLinks: []string{"html", "md", "txt"},
		},
		{
			name:      "optional failure is omitted",
			opts:      []Option{WithRenderer(failingRenderer{format: "md"})},
			formats:   []string{"html", "md", "txt"},
			wantLinks: []string{"html", "txt"},
		},
		{
			name:    "primary failure fails",
			opts:    []Option{WithRenderer(failingRenderer{format: "html"})},
			formats: []string{"html", "md"},
			wantErr: true,
		},
		{
			name:      "unknown format skipped",
			formats:   []string{"html", "pdf"},
			wantLinks: []string{"html"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			w := NewWriter(dir, "/generated_reports/", logger.NewNop(), tt.opts...)

			out, err := w.Write(context.Background(), sampleReport(), "call_model_20240301120000", tt.formats)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrRender) {
					t.Fatalf("Write() error = %v, want render error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if out.Preview == "" {
				t.Error("Write() returned empty preview")
			}
			if len(out.Links) != len(tt.wantLinks) {
				t.Fatalf("Write() links = %v, want formats %v", out.Links, tt.wantLinks)
			}
			for _, f := range tt.wantLinks {
				link, ok := out.Links[f]
				if !ok {
					t.Errorf("missing link for %s", f)
					continue
				}
				name := "call_model_20240301120000." + f
				if link != "/generated_reports/"+name {
					t.Errorf("link[%s] = %q", f, link)
				}
				if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
					t.Errorf("artifact %s not written: %v", name, err)
				}
			}
		})
	}
}

func TestWriterMirrorFailureIsNotFatal(t *testing.T) {
	m := &recordingMirror{err: errors.New("bucket gone")}
	w := NewWriter(t.TempDir(), "/generated_reports", logger.NewNop(), WithMirror(m))

	out, err := w.Write(context.Background(), sampleReport(), "base", []string{"html", "txt"})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if len(out.Links) != 2 {
		t.Errorf("Write() links = %v", out.Links)
	}
	if len(m.keys) != 2 || m.keys[0] != "base.html" || m.keys[1] != "base.txt" {
		t.Errorf("mirrored keys = %v", m.keys)
	}
}

func TestNumbered(t *testing.T) {
	tests := []struct {
		i        int
		subtitle string
		want     string
	}{
		{0, "Budget", "1. Budget"},
		{2, "Hiring", "3. Hiring"},
		{0, "1. Already numbered", "1. Already numbered"},
		{1, "2) Parenthesized", "2) Parenthesized"},
		{0, "2024 plans", "1. 2024 plans"},
	}
	for _, tt := range tests {
		if got := numbered(tt.i, tt.subtitle); got != tt.want {
			t.Errorf("numbered(%d, %q) = %q, want %q", tt.i, tt.subtitle, got, tt.want)
		}
	}
}
