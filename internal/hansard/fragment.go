package hansard

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/clock"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/encoding/doublejson"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/metrics"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/transport"
)

// RetryPolicy bounds re-fetch attempts for transcript fragments. Retries
// counts attempts after the first, so Retries=3 makes at most four
// requests. Only statuses in the allowlist are retried.
type RetryPolicy struct {
	Retries      int
	Statuses     []int
	InitialDelay time.Duration
	Multiplier   float64
}

// DefaultRetryPolicy matches the fragment endpoint's observed behavior:
// it intermittently answers 502 under load and recovers within seconds.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Retries:      3,
		Statuses:     []int{http.StatusBadGateway},
		InitialDelay: 3 * time.Second,
		Multiplier:   2.0,
	}
}

func (p RetryPolicy) retryable(status int) bool {
	return slices.Contains(p.Statuses, status)
}

// FragmentClient fetches rendered transcript fragments by document id.
type FragmentClient struct {
	transport transport.Client
	baseURL   string
	policy    RetryPolicy
	clock     clock.Clock
	logger    *zap.Logger
}

// NewFragmentClient returns a client rooted at baseURL. An empty baseURL
// selects the production API.
func NewFragmentClient(client transport.Client, baseURL string, policy RetryPolicy, clk clock.Clock, logger *zap.Logger) *FragmentClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &FragmentClient{
		transport: client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		policy:    policy,
		clock:     clk,
		logger:    logger,
	}
}

// FetchHTML retrieves the fragment for docID and unwraps its HTML
// payload. Allowlisted statuses retry with doubling delays until the
// budget runs out; any other non-2xx status fails immediately.
func (c *FragmentClient) FetchHTML(ctx context.Context, docID string) (string, error) {
	url := fmt.Sprintf("%s/fragment/html/%s", c.baseURL, docID)

	delay := c.policy.InitialDelay
	for attempt := 0; ; attempt++ {
		resp, err := c.transport.Do(ctx, http.MethodPost, url, nil)
		if err != nil {
			return "", fmt.Errorf("fetch fragment %s: %w", docID, err)
		}
		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			return c.decode(docID, resp.Body)
		}
		if !c.policy.retryable(resp.StatusCode) || attempt >= c.policy.Retries {
			return "", &HTTPError{StatusCode: resp.StatusCode, URL: url}
		}

		c.logger.Debug("retrying fragment fetch",
			zap.String("docid", docID),
			zap.Int("status", resp.StatusCode),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay))
		metrics.IncFetchRetry()
		if err := c.clock.Sleep(ctx, delay); err != nil {
			return "", fmt.Errorf("fetch fragment %s: %w", docID, err)
		}
		delay = time.Duration(float64(delay) * c.policy.Multiplier)
	}
}

// fragmentEnvelope is the fragment endpoint's payload. The HTML rides in
// a single PascalCase field.
type fragmentEnvelope struct {
	DocumentHTML string `json:"DocumentHtml"`
}

func (c *FragmentClient) decode(docID, body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", fmt.Errorf("fragment %s: %w", docID, ErrEmptyResponse)
	}
	var envelope fragmentEnvelope
	if err := doublejson.Unmarshal([]byte(body), &envelope); err != nil {
		return "", fmt.Errorf("fragment %s: %w: %s", docID, ErrMalformedResponse, err)
	}
	if envelope.DocumentHTML == "" {
		return "", fmt.Errorf("fragment %s: %w: no document html", docID, ErrMalformedResponse)
	}
	return envelope.DocumentHTML, nil
}
