package hansard

import (
	"fmt"
	"strings"
)

// dateDisplayMarker precedes the identifiers in portal permalinks.
const dateDisplayMarker = "#/DateDisplay/"

// idPrefix starts every Hansard day identifier.
const idPrefix = "HANSARD-"

// ParseIDs pulls the sitting-day identifier, and a document identifier when
// present, out of a portal URL.
//
// Permalinks carry both after "#/DateDisplay/":
//
//	…#/DateDisplay/<pdfid>/<docid>
//
// Older share links lack the marker, so as a fallback the slash-separated
// segments of the whole URL are scanned from the end for one with the
// HANSARD- prefix; such links never name a docid.
func ParseIDs(rawURL string) (pdfID, docID string, err error) {
	if _, tail, ok := strings.Cut(rawURL, dateDisplayMarker); ok {
		parts := splitNonEmpty(tail)
		switch {
		case len(parts) >= 2:
			return parts[0], parts[1], nil
		case len(parts) == 1:
			return parts[0], "", nil
		}
	}

	segments := splitNonEmpty(rawURL)
	for i := len(segments) - 1; i >= 0; i-- {
		if strings.HasPrefix(segments[i], idPrefix) {
			return segments[i], "", nil
		}
	}
	return "", "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
}

// ExtractPdfID is the pdfid-only convenience over ParseIDs.
func ExtractPdfID(rawURL string) (string, error) {
	pdfID, _, err := ParseIDs(rawURL)
	return pdfID, err
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "/") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
