package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/hansard"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/normalize"
)

// PDF renders the augmented topics of a sitting day as a single PDF. The
// layout follows the normalized structure rather than the fragment HTML:
// speeches get a bold speaker line, paragraphs keep their style.
func PDF(root *hansard.Root) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(fmt.Sprintf("Hansard %s (%s)", root.Date, root.Chamber), true)
	pdf.AddPage()

	// Core fonts are cp1252; transcripts carry curly quotes and the odd
	// accented member name.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr("Hansard "+root.Date), "", "L", false)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 5, tr(root.Chamber+", "+root.PdfID), "", "L", false)
	pdf.Ln(4)

	for proc, topic := range root.Topics() {
		if topic.Data == nil {
			continue
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, tr(proc.Name+" - "+topic.Name), "", "L", false)
		pdf.Ln(1)
		writeDocument(pdf, tr, topic.Data.Parsed)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDocument(pdf *gofpdf.Fpdf, tr func(string) string, doc *normalize.Document) {
	if doc == nil {
		return
	}
	if doc.Subtitle != nil && *doc.Subtitle != "" {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, tr(*doc.Subtitle), "", "L", false)
		pdf.Ln(1)
	}

	for _, block := range doc.Blocks {
		switch b := block.(type) {
		case normalize.Speech:
			heading := b.Speaker
			if b.Time != nil && *b.Time != "" {
				heading += " (" + *b.Time + ")"
			}
			pdf.SetFont("Helvetica", "B", 10)
			pdf.MultiCell(0, 5, tr(heading), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(b.Text), "", "L", false)
			pdf.Ln(2)
		case normalize.Paragraph:
			pdf.SetFont("Helvetica", styleFont(b.Style), 10)
			pdf.MultiCell(0, 5, tr(b.Text), "", "L", false)
			pdf.Ln(2)
		}
	}
}

func styleFont(style normalize.Style) string {
	switch style {
	case normalize.StyleBold:
		return "B"
	case normalize.StyleItalics:
		return "I"
	default:
		return ""
	}
}
