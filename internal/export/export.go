// Package export renders an augmented sitting day into shareable
// formats. Only topics that carry fetched data are rendered; bare topics
// are left out rather than rendered empty.
package export

import (
	"fmt"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/hansard"
)

// Supported output formats.
const (
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
)

// Formats lists the supported format names in the order Render accepts
// them.
func Formats() []string {
	return []string{FormatMarkdown, FormatPDF}
}

// Render produces the named format for root and returns the file
// extension to store it under.
func Render(root *hansard.Root, format string) ([]byte, string, error) {
	switch format {
	case FormatMarkdown:
		md, err := Markdown(root)
		if err != nil {
			return nil, "", err
		}
		return []byte(md), ".md", nil
	case FormatPDF:
		data, err := PDF(root)
		if err != nil {
			return nil, "", err
		}
		return data, ".pdf", nil
	default:
		return nil, "", fmt.Errorf("unknown export format %q (choose from %s, %s)", format, FormatMarkdown, FormatPDF)
	}
}
