package export

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/hansard"
)

// Markdown renders the augmented topics of a sitting day as one Markdown
// document: a day heading, a section per proceeding, a subsection per
// topic with its transcript converted from the fragment HTML.
func Markdown(root *hansard.Root) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Hansard %s (%s, %s)\n", root.Date, root.Chamber, root.PdfID)

	var lastProc *hansard.Proceeding
	for proc, topic := range root.Topics() {
		if topic.Data == nil {
			continue
		}
		if proc != lastProc {
			fmt.Fprintf(&b, "\n## %s\n", proc.Name)
			lastProc = proc
		}
		fmt.Fprintf(&b, "\n### %s\n\n", topic.Name)

		md, err := htmltomarkdown.ConvertString(topic.Data.RawHTML)
		if err != nil {
			return "", fmt.Errorf("convert %s to markdown: %w", topic.DocID, err)
		}
		b.WriteString(strings.TrimSpace(md))
		b.WriteString("\n")
	}
	return b.String(), nil
}
