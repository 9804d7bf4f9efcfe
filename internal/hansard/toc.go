package hansard

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/encoding/doublejson"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/transport"
)

// DefaultBaseURL is the production Hansard API root shared by the table
// of contents and fragment endpoints.
const DefaultBaseURL = "https://api.parliament.nsw.gov.au/api/hansard/search/daily"

// TOCClient fetches and decodes the table-of-contents tree for a sitting
// day.
type TOCClient struct {
	transport transport.Client
	baseURL   string
	logger    *zap.Logger
}

// NewTOCClient returns a client rooted at baseURL. An empty baseURL
// selects the production API.
func NewTOCClient(client transport.Client, baseURL string, logger *zap.Logger) *TOCClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &TOCClient{
		transport: client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger,
	}
}

// Fetch retrieves the sitting-day tree identified by pdfID. The endpoint
// answers POST with an empty body and double-encodes its JSON payload.
func (c *TOCClient) Fetch(ctx context.Context, pdfID string) (*Root, error) {
	url := fmt.Sprintf("%s/tableofcontentsbydate/%s", c.baseURL, pdfID)
	c.logger.Debug("fetching table of contents",
		zap.String("pdfid", pdfID),
		zap.String("url", url))

	resp, err := c.transport.Do(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch toc for %s: %w", pdfID, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url}
	}
	if strings.TrimSpace(resp.Body) == "" {
		return nil, fmt.Errorf("toc for %s: %w", pdfID, ErrEmptyResponse)
	}

	var roots []*Root
	if err := doublejson.Unmarshal([]byte(resp.Body), &roots); err != nil {
		return nil, fmt.Errorf("toc for %s: %w: %s", pdfID, ErrMalformedResponse, err)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("toc for %s: %w", pdfID, ErrEmptyTOC)
	}
	root := roots[0]
	if root == nil || root.Type != TypeRoot {
		return nil, fmt.Errorf("toc for %s: %w: first node is not a root", pdfID, ErrMalformedResponse)
	}

	c.logger.Debug("table of contents decoded",
		zap.String("pdfid", pdfID),
		zap.String("date", root.Date),
		zap.String("chamber", root.Chamber),
		zap.Int("items", len(root.Items)))
	return root, nil
}
