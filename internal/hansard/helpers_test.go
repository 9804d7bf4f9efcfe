package hansard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/transport"
)

// scriptedTransport serves canned responses in request order and records
// every request made through it.
type scriptedTransport struct {
	mu        sync.Mutex
	responses []*transport.Response
	errs      []error
	calls     []scriptedCall
}

type scriptedCall struct {
	method string
	url    string
}

func (s *scriptedTransport) Do(_ context.Context, method, url string, _ http.Header) (*transport.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := len(s.calls)
	s.calls = append(s.calls, scriptedCall{method: method, url: url})
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return nil, fmt.Errorf("unexpected request %d to %s", i, url)
}

// recordingClock captures sleep requests without actually waiting.
type recordingClock struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (c *recordingClock) Now() time.Time {
	return time.Date(2025, time.August, 19, 10, 0, 0, 0, time.UTC)
}

func (c *recordingClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	return nil
}

func (c *recordingClock) recorded() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// doubleEncode wraps payload the way the production API does: JSON, then
// that JSON as a single JSON string.
func doubleEncode(t *testing.T, payload any) string {
	t.Helper()
	inner, err := json.Marshal(payload)
	require.NoError(t, err)
	outer, err := json.Marshal(string(inner))
	require.NoError(t, err)
	return string(outer)
}

// sampleTOCJSON is a trimmed sitting day: two proceedings, one
// subproceeding, one topic without a docid, one nested member.
const sampleTOCJSON = `[
  {
    "pdfid": "HANSARD-1323879322-142056",
    "type": "Root",
    "expanded": true,
    "date": "2025-08-19",
    "chamber": "Legislative Assembly",
    "draft": false,
    "item": [
      {
        "id": "p1",
        "name": "Bills",
        "type": "Proceeding",
        "expanded": false,
        "item": [
          {
            "id": "t1",
            "name": "Legal Aid Amendment Bill 2025",
            "docid": "HANSARD-1323879322-142100",
            "type": "Topic",
            "expanded": false,
            "item": [
              {"id": "m1", "name": "Ms Jodie Harrison", "type": "Member", "xref": "member-101"}
            ]
          },
          {
            "id": "t2",
            "name": "Procedural note",
            "type": "Topic",
            "expanded": false
          }
        ]
      },
      {
        "id": "s1",
        "name": "Announcements",
        "type": "Subproceeding",
        "expanded": false,
        "item": [
          {
            "id": "t3",
            "name": "Community Recognition",
            "docid": "HANSARD-1323879322-142200",
            "type": "Topic",
            "expanded": false
          }
        ]
      },
      {
        "id": "p2",
        "name": "Motions",
        "type": "Proceeding",
        "expanded": false,
        "item": [
          {
            "id": "t4",
            "name": "Regional Health Funding",
            "docid": "HANSARD-1323879322-142300",
            "type": "Topic",
            "expanded": false
          }
        ]
      }
    ]
  }
]`

// sampleRoot decodes sampleTOCJSON into a tree.
func sampleRoot(t *testing.T) *Root {
	t.Helper()
	var roots []*Root
	require.NoError(t, json.Unmarshal([]byte(sampleTOCJSON), &roots))
	require.Len(t, roots, 1)
	return roots[0]
}
