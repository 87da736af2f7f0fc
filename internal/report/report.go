// Package report renders a meeting into a DOCX document for export.
package report

import (
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/fluentoffice/notes-backend/internal/store"
)

const (
	fontName = "Times New Roman"
	bodySize = 12
	headSize = 14
)

// Content is the language-resolved summary pair used for rendering.
type Content struct {
	Summary     string
	ActionItems []string
}

// PickLanguage selects the summary/action-items pair matching the record's
// detected language, falling back to English.
func PickLanguage(m *store.Meeting) Content {
	lang := ""
	if m.DetectedLanguage != nil {
		lang = strings.ToLower(*m.DetectedLanguage)
	}

	if strings.HasPrefix(lang, "zh") && m.SummaryZH != nil {
		return Content{Summary: *m.SummaryZH, ActionItems: m.ActionItemsZH}
	}

	c := Content{}
	if m.SummaryEN != nil {
		c.Summary = *m.SummaryEN
	}
	c.ActionItems = m.ActionItemsEN
	return c
}

// Generate writes a DOCX report for the meeting to outputPath: meeting
// details, summary, action items and the full transcript.
func Generate(m *store.Meeting, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), "Meeting Notes Report", true, 16)
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Meeting Details", true, headSize)
	addBodyLine(doc, "Original Filename: "+orNA(m.Filename))
	addBodyLine(doc, "Uploaded On: "+m.UploadTime.UTC().Format("2006-01-02 15:04:05 UTC"))
	addBodyLine(doc, "Processing Status: "+string(m.Status))
	doc.AddParagraph("")

	content := PickLanguage(m)

	addStyledRun(doc.AddParagraph(""), "Summary", true, headSize)
	summary := content.Summary
	if summary == "" {
		summary = "No summary generated."
	}
	addBodyLine(doc, summary)
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Action Items", true, headSize)
	if len(content.ActionItems) == 0 {
		addBodyLine(doc, "No action items identified.")
	} else {
		for _, item := range content.ActionItems {
			addBodyLine(doc, "• "+item)
		}
	}
	doc.AddParagraph("")

	if m.Transcript != nil && *m.Transcript != "" {
		addStyledRun(doc.AddParagraph(""), "Full Transcript", true, headSize)
		for _, line := range strings.Split(*m.Transcript, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				addBodyLine(doc, trimmed)
			}
		}
	}

	return doc.SaveTo(outputPath)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addBodyLine(doc *docx.RootDoc, text string) {
	doc.AddParagraph("").AddText(text).Font(fontName).Size(bodySize).Color("000000")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
