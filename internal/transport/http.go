package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/metrics"
)

// HTTPClient is the default Client: a pooled net/http client with the
// stable header set applied to every request.
type HTTPClient struct {
	client  *http.Client
	headers http.Header
	logger  *zap.Logger
}

// NewHTTPClient builds an HTTPClient over a tuned connection pool.
func NewHTTPClient(opts Options, logger *zap.Logger) *HTTPClient {
	opts = opts.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: newPooledTransport(opts.PoolSize),
		},
		headers: BaseHeaders(opts.UserAgent),
		logger:  logger,
	}
}

// Do performs one exchange. Any completed response comes back with its
// status code; errors mean the exchange itself failed.
func (c *HTTPClient) Do(ctx context.Context, method, url string, hdr http.Header) (*Response, error) {
	// Empty POST bodies still advertise Content-Length: 0, which the API
	// expects; net/http does that for nil bodies on its own.
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	applyHeaders(req.Header, c.headers, hdr)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}

	elapsed := time.Since(start)
	metrics.ObserveRequest(url, resp.StatusCode, elapsed)
	c.logger.Debug("request complete",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))

	return &Response{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
