// Package transport issues the HTTP exchanges behind the Hansard API
// clients.
//
// A Client returns *Response for every completed exchange, whatever the
// status code; the error return is reserved for transport-level failures
// such as dial errors, TLS failures, timeouts and context cancellation.
// Status policy belongs to callers.
package transport

import (
	"context"
	"net/http"
	"time"
)

// Response is a completed HTTP exchange reduced to what the API clients
// consume.
type Response struct {
	StatusCode int
	Body       string
}

// Client performs one HTTP exchange. Implementations apply the stable
// outgoing header set and merge hdr over it; hdr may be nil.
type Client interface {
	Do(ctx context.Context, method, url string, hdr http.Header) (*Response, error)
}

// Options tune the pooled providers.
type Options struct {
	Timeout   time.Duration
	PoolSize  int
	UserAgent string
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.PoolSize <= 0 {
		o.PoolSize = 32
	}
	return o
}

// applyHeaders layers base and per-request headers onto dst, later layers
// replacing earlier keys.
func applyHeaders(dst http.Header, layers ...http.Header) {
	for _, layer := range layers {
		for key, values := range layer {
			dst.Del(key)
			for _, v := range values {
				dst.Add(key, v)
			}
		}
	}
}

// newPooledTransport builds the shared connection pool, sized so a full
// worker fan-out keeps its connections warm.
func newPooledTransport(poolSize int) *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        4 * poolSize,
		MaxIdleConnsPerHost: poolSize,
		MaxConnsPerHost:     2 * poolSize,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	}
}
