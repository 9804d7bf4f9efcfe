package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/metrics"
)

// CollyClient is an alternate Client built on the Colly collector. It keeps
// the same exchange semantics as HTTPClient: completed responses come back
// with their status code regardless of class.
type CollyClient struct {
	baseCollector *colly.Collector
	headers       http.Header
	logger        *zap.Logger
}

type collectorHooks interface {
	OnResponse(colly.ResponseCallback)
	OnError(colly.ErrorCallback)
}

// NewCollyClient builds a CollyClient over a tuned connection pool.
func NewCollyClient(opts Options, logger *zap.Logger) *CollyClient {
	opts = opts.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	base := colly.NewCollector(
		colly.Async(false),
		colly.IgnoreRobotsTxt(),
	)
	// Retries revisit the same fragment URL, and error statuses must flow
	// back as responses rather than collector errors.
	base.AllowURLRevisit = true
	base.ParseHTTPErrorResponse = true
	base.WithTransport(newPooledTransport(opts.PoolSize))
	base.SetRequestTimeout(opts.Timeout)

	return &CollyClient{
		baseCollector: base,
		headers:       BaseHeaders(opts.UserAgent),
		logger:        logger,
	}
}

// Do performs one exchange through a clone of the base collector.
func (c *CollyClient) Do(ctx context.Context, method, url string, hdr http.Header) (*Response, error) {
	collector := c.baseCollector.Clone()

	var (
		result   *Response
		fetchErr error
	)
	start := time.Now()
	configureCollectorHooks(collector, &result, &fetchErr)

	merged := http.Header{}
	applyHeaders(merged, c.headers, hdr)

	if err := runCollector(ctx, collector, method, url, merged, &fetchErr); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("%s %s: collector produced no response", method, url)
	}

	elapsed := time.Since(start)
	metrics.ObserveRequest(url, result.StatusCode, elapsed)
	c.logger.Debug("request complete",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", result.StatusCode),
		zap.Duration("elapsed", elapsed))

	return result, nil
}

func configureCollectorHooks(hooks collectorHooks, result **Response, fetchErr *error) {
	hooks.OnResponse(func(r *colly.Response) {
		*result = &Response{StatusCode: r.StatusCode, Body: string(r.Body)}
	})

	hooks.OnError(func(r *colly.Response, err error) {
		// A status code means the exchange completed; recover it.
		if r != nil && r.StatusCode != 0 {
			*result = &Response{StatusCode: r.StatusCode, Body: string(r.Body)}
			return
		}
		*fetchErr = err
	})
}

func runCollector(ctx context.Context, collector *colly.Collector, method, url string, hdr http.Header, fetchErr *error) error {
	done := make(chan error, 1)
	go func() {
		done <- collector.Request(method, url, nil, nil, hdr)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s %s canceled: %w", method, url, ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, url, err)
		}
		if *fetchErr != nil {
			return fmt.Errorf("%s %s: %w", method, url, *fetchErr)
		}
		return nil
	}
}
