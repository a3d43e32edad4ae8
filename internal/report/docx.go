// Package report renders a completed scan as a DOCX briefing for export.
package report

import (
	"fmt"
	"strings"

	"github.com/gingfrederik/docx"

	"github.com/kanesei1102-sketch/Corporate-Scanner/internal/domain"
)

// Generate writes the strategic report for one history record to path.
func Generate(rec *domain.HistoryRecord, path string) error {
	f := docx.NewFile()

	// Header
	p := f.AddParagraph()
	run := p.AddText(fmt.Sprintf("Strategic Report: %s", rec.Target))
	run.Size(20)

	p = f.AddParagraph()
	run = p.AddText(fmt.Sprintf("Generated on %s", rec.CreatedAt.UTC().Format("2006-01-02")))
	run.Size(10)
	run.Color("808080")
	f.AddParagraph() // Spacer

	// Market status
	p = f.AddParagraph()
	run = p.AddText("Market Status")
	run.Size(16)

	f.AddParagraph().AddText(marketLabel(rec.Market))
	f.AddParagraph() // Spacer

	// Summary
	if rec.Summary != "" {
		p = f.AddParagraph()
		run = p.AddText("Executive Summary")
		run.Size(16)

		for _, txt := range strings.Split(rec.Summary, "\n\n") {
			txt = strings.TrimSpace(txt)
			if txt != "" {
				f.AddParagraph().AddText(txt)
			}
		}
		f.AddParagraph() // Spacer
	}

	// News items
	p = f.AddParagraph()
	run = p.AddText("Latest News")
	run.Size(16)

	if rec.Generic {
		p = f.AddParagraph()
		run = p.AddText("No company-specific coverage was found; the items below are general industry news.")
		run.Size(10)
		run.Color("808080")
	}

	if len(rec.Items) == 0 {
		f.AddParagraph().AddText("No recent coverage found.")
	}

	for _, item := range rec.Items {
		p = f.AddParagraph()
		run = p.AddText(item.Title)
		run.Size(16)

		p = f.AddParagraph()
		run = p.AddText(fmt.Sprintf("Source: %s | Date: %s", item.Source, item.Date))
		run.Size(10)
		run.Color("808080")

		if item.Snippet != "" {
			f.AddParagraph().AddText(item.Snippet)
		}

		p = f.AddParagraph()
		run = p.AddText(item.URL)
		run.Size(10)
		run.Color("0000FF")

		f.AddParagraph() // Spacer
	}

	return f.Save(path)
}

// Filename builds a safe download name for the record.
func Filename(rec *domain.HistoryRecord) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, string(rec.Target))

	return fmt.Sprintf("report_%s_%s.docx", name, rec.CreatedAt.UTC().Format("20060102"))
}

func marketLabel(m domain.MarketStatus) string {
	switch m {
	case domain.MarketListed:
		return "Publicly listed (exchange coverage detected)"
	case domain.MarketUnlisted:
		return "Private or unlisted"
	default:
		return "Unknown"
	}
}
