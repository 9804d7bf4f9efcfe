package normalize

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parseGoquery normalizes via CSS selectors.
func parseGoquery(fragment string) (*Document, error) {
	root, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &Document{Blocks: []Block{}}
	doc.Title = selectionText(root.Find("p." + classTitle).First())
	doc.Subtitle = selectionText(root.Find("p." + classSubtitle).First())

	root.Find("p").Each(func(_ int, p *goquery.Selection) {
		if block, ok := classifyGoquery(p); ok {
			doc.Blocks = append(doc.Blocks, block)
		}
	})
	return doc, nil
}

// selectionText collapses the first node of sel, or returns nil for an
// empty selection.
func selectionText(sel *goquery.Selection) *string {
	if sel.Length() == 0 {
		return nil
	}
	text := collapseText(sel.Nodes[0])
	return &text
}

func classifyGoquery(p *goquery.Selection) (Block, bool) {
	for _, class := range speakerClasses {
		speaker := p.Find("." + class).First()
		if speaker.Length() == 0 {
			continue
		}
		return Speech{
			Speaker: collapseText(speaker.Nodes[0]),
			Time:    selectionText(p.Find("." + classTime).First()),
			Text:    collapseText(p.Nodes[0]),
		}, true
	}

	// Is, not HasClass: goquery's HasClass splits class attributes on a
	// narrower whitespace set than its selector engine does, and style
	// detection must agree with the selectors used everywhere else.
	switch {
	case p.Is("." + classBold):
		return Paragraph{Style: StyleBold, Text: collapseText(p.Nodes[0])}, true
	case p.Is("." + classItalics):
		return Paragraph{Style: StyleItalics, Text: collapseText(p.Nodes[0])}, true
	case p.Is("." + classNormal):
		return Paragraph{Style: StyleNormal, Text: collapseText(p.Nodes[0])}, true
	default:
		return nil, false
	}
}
