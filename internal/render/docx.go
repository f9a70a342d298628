package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var reBold = regexp.MustCompile(`\*\*(.+?)\*\*`)

// DocxRenderer writes the report as a Word document.
type DocxRenderer struct{}

func (DocxRenderer) Format() string { return "docx" }

func (DocxRenderer) Render(r *Report, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), r.Title, true, 16)
	addStyledRun(doc.AddParagraph(""), fmt.Sprintf("Model: %s", r.ModelID), false, 11)

	if s := r.Summary; s != nil {
		addStyledRun(doc.AddParagraph(""), summaryHeading, true, 15)
		for _, line := range nonEmpty(splitLines(s.IntroParagraph)) {
			addRichText(doc.AddParagraph(""), line)
		}
		for i, item := range s.Items {
			addStyledRun(doc.AddParagraph(""), numbered(i, item.Subtitle), true, 14)
			for _, d := range item.Details {
				addRichText(doc.AddParagraph(""), "• "+d)
			}
		}
		if a := s.BilingualAppend; a != nil {
			addStyledRun(doc.AddParagraph(""), a.Title, true, 15)
			for _, line := range nonEmpty(splitLines(a.IntroParagraph)) {
				addRichText(doc.AddParagraph(""), line)
			}
			for i, item := range a.Items {
				addStyledRun(doc.AddParagraph(""), numbered(i, item.Subtitle), true, 14)
				for _, d := range item.Details {
					addRichText(doc.AddParagraph(""), "• "+d)
				}
			}
		}
	}

	if t := r.Transcript; t != nil {
		addStyledRun(doc.AddParagraph(""), transcriptHeading, true, 15)
		if t.BilingualPrepend != "" {
			addStyledRun(doc.AddParagraph(""), t.BilingualPrepend, false, fontSize)
		}
		for _, p := range t.Paragraphs {
			para := doc.AddParagraph("")
			if p.IsSpeakerLine {
				para.AddText(p.Speaker+": ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
			}
			para.AddText(p.Content).Font(fontName).Size(fontSize).Color("000000")
			if p.InsertBreakAfter {
				doc.AddParagraph("")
			}
		}
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func nonEmpty(in []string) []string {
	out := in[:0:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
