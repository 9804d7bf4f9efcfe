package normalize

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

// Structural expressions compile once at init. Class tokens are tested in
// Go rather than in XPath predicates: XPath's normalize-space recognizes
// XML whitespace only, which disagrees with CSS class splitting on inputs
// like form feeds, and the engines must never disagree.
var (
	exprParagraphs  = xpath.MustCompile("//p")
	exprDescendants = xpath.MustCompile(".//*")
)

// parseXPath normalizes via XPath queries over the parse tree. It is the
// default engine.
func parseXPath(fragment string) (*Document, error) {
	root, err := htmlquery.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &Document{Blocks: []Block{}}
	for _, p := range htmlquery.QuerySelectorAll(root, exprParagraphs) {
		if doc.Title == nil && hasClassToken(p, classTitle) {
			title := collapseText(p)
			doc.Title = &title
		}
		if doc.Subtitle == nil && hasClassToken(p, classSubtitle) {
			subtitle := collapseText(p)
			doc.Subtitle = &subtitle
		}
		if block, ok := classifyXPath(p); ok {
			doc.Blocks = append(doc.Blocks, block)
		}
	}
	return doc, nil
}

func classifyXPath(p *html.Node) (Block, bool) {
	descendants := htmlquery.QuerySelectorAll(p, exprDescendants)
	for _, class := range speakerClasses {
		speaker := firstByClass(descendants, class)
		if speaker == nil {
			continue
		}
		var timeText *string
		if node := firstByClass(descendants, classTime); node != nil {
			v := collapseText(node)
			timeText = &v
		}
		return Speech{
			Speaker: collapseText(speaker),
			Time:    timeText,
			Text:    collapseText(p),
		}, true
	}

	style, ok := paragraphStyle(p)
	if !ok {
		return nil, false
	}
	return Paragraph{Style: style, Text: collapseText(p)}, true
}

// firstByClass returns the first of nodes carrying class as a token.
// QuerySelectorAll yields document order, so first here means first in
// the fragment.
func firstByClass(nodes []*html.Node, class string) *html.Node {
	for _, node := range nodes {
		if hasClassToken(node, class) {
			return node
		}
	}
	return nil
}
