package normalize

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// parseDOM normalizes by walking the x/net/html parse tree directly.
func parseDOM(fragment string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &Document{Blocks: []Block{}}
	for _, p := range elementsByTag(root, "p") {
		if doc.Title == nil && hasClassToken(p, classTitle) {
			title := collapseText(p)
			doc.Title = &title
		}
		if doc.Subtitle == nil && hasClassToken(p, classSubtitle) {
			subtitle := collapseText(p)
			doc.Subtitle = &subtitle
		}
		if block, ok := classifyDOM(p); ok {
			doc.Blocks = append(doc.Blocks, block)
		}
	}
	return doc, nil
}

func classifyDOM(p *html.Node) (Block, bool) {
	for _, class := range speakerClasses {
		speaker := firstDescendantByClass(p, class)
		if speaker == nil {
			continue
		}
		var timeText *string
		if node := firstDescendantByClass(p, classTime); node != nil {
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

// paragraphStyle maps a paragraph's class tokens to a Style. A paragraph
// carrying several style classes resolves bold over italics over normal.
func paragraphStyle(p *html.Node) (Style, bool) {
	switch {
	case hasClassToken(p, classBold):
		return StyleBold, true
	case hasClassToken(p, classItalics):
		return StyleItalics, true
	case hasClassToken(p, classNormal):
		return StyleNormal, true
	default:
		return "", false
	}
}

// elementsByTag collects every element named tag under root in document
// order.
func elementsByTag(root *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			out = append(out, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return out
}

// firstDescendantByClass returns the first element strictly below n, in
// document order, whose class attribute contains the given token. n
// itself is never a match.
func firstDescendantByClass(n *html.Node, class string) *html.Node {
	var find func(*html.Node) *html.Node
	find = func(node *html.Node) *html.Node {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.ElementNode && hasClassToken(child, class) {
				return child
			}
			if match := find(child); match != nil {
				return match
			}
		}
		return nil
	}
	return find(n)
}
