package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollyClientDo(t *testing.T) {
	t.Parallel()

	rs, srv := newRecordingServer(http.StatusOK, `"{\"DocumentHtml\":\"<p>x</p>\"}"`)
	defer srv.Close()

	client := NewCollyClient(Options{}, nil)
	resp, err := client.Do(context.Background(), http.MethodPost, srv.URL+"/toc", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, `"{\"DocumentHtml\":\"<p>x</p>\"}"`, resp.Body)

	reqs := rs.recorded()
	require.Len(t, reqs, 1)
	require.Equal(t, http.MethodPost, reqs[0].method)
	require.NotEmpty(t, reqs[0].userAgent)
	require.Equal(t, "application/json, text/javascript, */*; q=0.01", reqs[0].accept)
}

// TestCollyClientDoStatusPassthrough ensures error statuses come back as
// responses, matching HTTPClient, so the retry ladder sees the code.
func TestCollyClientDoStatusPassthrough(t *testing.T) {
	t.Parallel()

	_, srv := newRecordingServer(http.StatusBadGateway, "gateway sad")
	defer srv.Close()

	client := NewCollyClient(Options{}, nil)
	resp, err := client.Do(context.Background(), http.MethodPost, srv.URL, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	require.Equal(t, "gateway sad", resp.Body)
}

// TestCollyClientDoRevisit checks the same URL can be fetched repeatedly,
// which backoff retries rely on.
func TestCollyClientDoRevisit(t *testing.T) {
	t.Parallel()

	rs, srv := newRecordingServer(http.StatusOK, "{}")
	defer srv.Close()

	client := NewCollyClient(Options{}, nil)
	for range 3 {
		_, err := client.Do(context.Background(), http.MethodPost, srv.URL, nil)
		require.NoError(t, err)
	}
	require.Len(t, rs.recorded(), 3)
}

func TestCollyClientDoContextCanceled(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer func() {
		close(release)
		srv.Close()
	}()

	client := NewCollyClient(Options{}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	resp, err := client.Do(ctx, http.MethodPost, srv.URL, nil)
	require.Error(t, err)
	require.Nil(t, resp)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCollyClientDoTransportError(t *testing.T) {
	t.Parallel()

	_, srv := newRecordingServer(http.StatusOK, "{}")
	url := srv.URL
	srv.Close()

	client := NewCollyClient(Options{Timeout: time.Second}, nil)
	resp, err := client.Do(context.Background(), http.MethodPost, url, nil)
	require.Error(t, err)
	require.Nil(t, resp)
}
