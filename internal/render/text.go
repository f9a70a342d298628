package render

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

const (
	summaryHeading    = "Key Summary"
	transcriptHeading = "Transcript"
)

var reNumbered = regexp.MustCompile(`^\d+[.)]\s`)

// numbered prefixes the i-th subtitle with its position unless the model
// already numbered it.
func numbered(i int, subtitle string) string {
	if reNumbered.MatchString(subtitle) {
		return subtitle
	}
	return fmt.Sprintf("%d. %s", i+1, subtitle)
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// MarkdownRenderer writes the report as Markdown.
type MarkdownRenderer struct{}

func (MarkdownRenderer) Format() string { return "md" }

func (MarkdownRenderer) Render(r *Report, path string) error {
	return os.WriteFile(path, []byte(Markdown(r)), 0644)
}

// Markdown returns the Markdown form of r.
func Markdown(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "_Model: %s, generated %s_\n\n", r.ModelID, r.GeneratedAt.Format("2006-01-02 15:04"))

	if s := r.Summary; s != nil {
		fmt.Fprintf(&b, "## %s\n\n", summaryHeading)
		if s.IntroParagraph != "" {
			fmt.Fprintf(&b, "%s\n\n", s.IntroParagraph)
		}
		for i, item := range s.Items {
			fmt.Fprintf(&b, "### %s\n", numbered(i, item.Subtitle))
			for _, d := range item.Details {
				fmt.Fprintf(&b, "- %s\n", strings.ReplaceAll(d, "\n", "\n  "))
			}
			b.WriteString("\n")
		}
		if a := s.BilingualAppend; a != nil {
			fmt.Fprintf(&b, "## %s\n\n", a.Title)
			if a.IntroParagraph != "" {
				fmt.Fprintf(&b, "%s\n\n", a.IntroParagraph)
			}
			for i, item := range a.Items {
				fmt.Fprintf(&b, "### %s\n", numbered(i, item.Subtitle))
				for _, d := range item.Details {
					fmt.Fprintf(&b, "- %s\n", strings.ReplaceAll(d, "\n", "\n  "))
				}
				b.WriteString("\n")
			}
		}
	}

	if t := r.Transcript; t != nil {
		fmt.Fprintf(&b, "## %s\n\n", transcriptHeading)
		if t.BilingualPrepend != "" {
			fmt.Fprintf(&b, "%s\n\n", t.BilingualPrepend)
		}
		for _, p := range t.Paragraphs {
			if p.IsSpeakerLine {
				fmt.Fprintf(&b, "**%s:** %s\n\n", p.Speaker, p.Content)
			} else {
				fmt.Fprintf(&b, "%s\n\n", p.Content)
			}
			if p.InsertBreakAfter {
				b.WriteString("---\n\n")
			}
		}
	}

	return b.String()
}

// TextRenderer writes the report as plain text.
type TextRenderer struct{}

func (TextRenderer) Format() string { return "txt" }

func (TextRenderer) Render(r *Report, path string) error {
	return os.WriteFile(path, []byte(PlainText(r)), 0644)
}

// PlainText returns the plain-text form of r.
func PlainText(r *Report) string {
	const rule = "--------------------"

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", r.Title)

	if s := r.Summary; s != nil {
		fmt.Fprintf(&b, "%s\n%s\n", summaryHeading, rule)
		if s.IntroParagraph != "" {
			fmt.Fprintf(&b, "%s\n\n", s.IntroParagraph)
		}
		for i, item := range s.Items {
			fmt.Fprintf(&b, "%s\n", numbered(i, item.Subtitle))
			for _, d := range item.Details {
				fmt.Fprintf(&b, "  - %s\n", strings.ReplaceAll(d, "\n", "\n    "))
			}
			b.WriteString("\n")
		}
		if a := s.BilingualAppend; a != nil {
			fmt.Fprintf(&b, "%s\n%s\n", a.Title, rule)
			if a.IntroParagraph != "" {
				fmt.Fprintf(&b, "%s\n\n", a.IntroParagraph)
			}
			for i, item := range a.Items {
				fmt.Fprintf(&b, "%s\n", numbered(i, item.Subtitle))
				for _, d := range item.Details {
					fmt.Fprintf(&b, "  - %s\n", strings.ReplaceAll(d, "\n", "\n    "))
				}
				b.WriteString("\n")
			}
		}
	}

	if t := r.Transcript; t != nil {
		fmt.Fprintf(&b, "%s\n%s\n", transcriptHeading, rule)
		if t.BilingualPrepend != "" {
			fmt.Fprintf(&b, "%s\n\n", t.BilingualPrepend)
		}
		for _, p := range t.Paragraphs {
			if p.IsSpeakerLine {
				fmt.Fprintf(&b, "%s: %s\n\n", p.Speaker, p.Content)
			} else {
				fmt.Fprintf(&b, "%s\n\n", p.Content)
			}
		}
	}

	return b.String()
}
