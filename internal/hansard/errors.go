package hansard

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the TOC and fragment clients. Callers reach
// them through errors.Is whatever wrapping was added along the way.
var (
	// ErrInvalidURL marks portal URLs that carry no extractable pdfid.
	ErrInvalidURL = errors.New("unable to extract pdfid from url")

	// ErrEmptyResponse marks success responses with a blank body.
	ErrEmptyResponse = errors.New("empty response body")

	// ErrMalformedResponse marks bodies that do not decode into the
	// expected shape.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrEmptyTOC marks sitting days whose table of contents decodes to no
	// entries.
	ErrEmptyTOC = errors.New("table of contents is empty")
)

// HTTPError reports a non-success status, either immediately for
// non-retryable statuses or once the retry budget is spent.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http status %d from %s", e.StatusCode, e.URL)
}
