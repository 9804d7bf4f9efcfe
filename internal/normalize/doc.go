// Package normalize turns Hansard transcript fragment HTML into a small
// structured document: an optional title and subtitle plus an ordered list
// of speech and paragraph blocks.
//
// Three engines implement the same rules over the same x/net/html parse
// tree: XPath queries (the default), goquery CSS selectors, and a direct
// tree walk. They exist to cross-check one another; for any input, all
// three produce identical documents, and the tests enforce it.
package normalize
