package normalize

import (
	"strings"

	"golang.org/x/net/html"
)

// collapseText flattens every text node under n into one line. Node
// boundaries count as whitespace and runs of whitespace collapse to a
// single space, so all engines render the same string from the same
// subtree regardless of how the markup was indented.
func collapseText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteByte(' ')
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// classSeparators are the ASCII whitespace bytes CSS uses to split class
// attributes into tokens. hasClassToken must split exactly the way the
// goquery engine's selectors do, or the engines could disagree.
const classSeparators = " \t\r\n\f"

// hasClassToken reports whether n's class attribute contains name as a
// whole token. Prefix matches do not count: "Normal-P" never matches
// class="Normal-Paragraph".
func hasClassToken(n *html.Node, name string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		rest := attr.Val
		for rest != "" {
			i := strings.IndexAny(rest, classSeparators)
			if i < 0 {
				return rest == name
			}
			if rest[:i] == name {
				return true
			}
			rest = rest[i+1:]
		}
		return false
	}
	return false
}
