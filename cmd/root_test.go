package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/clock/system"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/config"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/hansard"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/storage"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/transport"
)

const (
	testPdfID = "HANSARD-1323879322-142056"
	testDocID = "HANSARD-1323879322-142100"

	permalink = "https://www.parliament.nsw.gov.au/Hansard/Pages/HansardResult.aspx#/DateDisplay/" +
		testPdfID + "/" + testDocID

	tocURL      = hansard.DefaultBaseURL + "/tableofcontentsbydate/" + testPdfID
	fragmentURL = hansard.DefaultBaseURL + "/fragment/html/" + testDocID

	fragmentBody = `{"DocumentHtml":"<div><p class=\"SubDebate-H\">LEGAL AID AMENDMENT BILL 2025</p><p class=\"Normal-P\">Debate resumed.</p></div>"}`
)

func tocBodyFor(pdfID, docID string) string {
	return fmt.Sprintf(`[{"pdfid":%q,"type":"Root","expanded":true,"date":"2025-08-19T00:00:00","chamber":"Legislative Assembly","draft":false,"item":[{"name":"Bills","type":"Proceeding","expanded":false,"item":[{"name":"Legal Aid Amendment Bill 2025","docid":%q,"type":"Topic","expanded":false}]}]}]`, pdfID, docID)
}

// fakeTransport serves canned responses by URL and fails every other
// request, so no test ever dials out.
type fakeTransport struct {
	responses map[string]*transport.Response
}

func (f *fakeTransport) Do(_ context.Context, _, url string, _ http.Header) (*transport.Response, error) {
	resp, ok := f.responses[url]
	if !ok {
		return nil, fmt.Errorf("unexpected request to %s", url)
	}
	return resp, nil
}

type mockApp struct {
	cfg       config.Config
	logger    *zap.Logger
	toc       *hansard.TOCClient
	fragments *hansard.FragmentClient
	writer    *storage.Writer
	dumper    *storage.HTMLDumper
}

func (m *mockApp) Close()                                {}
func (m *mockApp) GetConfig() config.Config              { return m.cfg }
func (m *mockApp) GetLogger() *zap.Logger                { return m.logger }
func (m *mockApp) GetTOC() *hansard.TOCClient            { return m.toc }
func (m *mockApp) GetFragments() *hansard.FragmentClient { return m.fragments }
func (m *mockApp) GetWriter() *storage.Writer            { return m.writer }
func (m *mockApp) GetDumper() *storage.HTMLDumper        { return m.dumper }

// installMockApp swaps the application factory for one that serves canned
// API responses and writes artifacts under a temp dir. Tests using it
// share the factory variable and must not run in parallel.
func installMockApp(t *testing.T, responses map[string]*transport.Response) string {
	t.Helper()
	dir := t.TempDir()

	orig := newApp
	t.Cleanup(func() { newApp = orig })

	newApp = func(cfg config.Config, _ *zap.Logger) (App, error) {
		ft := &fakeTransport{responses: responses}
		nop := zap.NewNop()
		return &mockApp{
			cfg:       cfg,
			logger:    nop,
			toc:       hansard.NewTOCClient(ft, cfg.API.BaseURL, nop),
			fragments: hansard.NewFragmentClient(ft, cfg.API.BaseURL, cfg.Fragment.RetryPolicy(), system.New(), nop),
			writer:    storage.NewWriter(dir, nop),
			dumper:    storage.NewHTMLDumper(filepath.Join(dir, "html"), nop),
		}, nil
	}
	return dir
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCmdStructure(t *testing.T) {
	t.Parallel()

	root := newRootCmd()

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	require.Contains(t, names, "scrape")
	require.Contains(t, names, "toc")
	require.Contains(t, names, "topic")

	for _, flag := range []string{"config", "verbose", "metrics-listen"} {
		require.NotNil(t, root.PersistentFlags().Lookup(flag), "missing persistent flag %s", flag)
	}
}

func TestResolveAppMissing(t *testing.T) {
	t.Parallel()

	_, err := resolveApp(context.Background())
	require.EqualError(t, err, "application services not initialized")
}

func TestTocCommand(t *testing.T) {
	installMockApp(t, map[string]*transport.Response{
		tocURL: {StatusCode: http.StatusOK, Body: tocBodyFor(testPdfID, testDocID)},
	})

	out, err := executeCommand(t, "toc", "--url", permalink)
	require.NoError(t, err)
	require.Contains(t, out, `"docid": "`+testDocID+`"`)
	require.Contains(t, out, `"title": "Bills"`)
}

func TestTocCommandTopics(t *testing.T) {
	installMockApp(t, map[string]*transport.Response{
		tocURL: {StatusCode: http.StatusOK, Body: tocBodyFor(testPdfID, testDocID)},
	})

	out, err := executeCommand(t, "toc", "--url", permalink, "--topics")
	require.NoError(t, err)
	require.Contains(t, out, "Bills\tLegal Aid Amendment Bill 2025\t"+testDocID+"\n")
}

func TestTopicCommand(t *testing.T) {
	dir := installMockApp(t, map[string]*transport.Response{
		tocURL:      {StatusCode: http.StatusOK, Body: tocBodyFor(testPdfID, testDocID)},
		fragmentURL: {StatusCode: http.StatusOK, Body: fragmentBody},
	})

	out, err := executeCommand(t, "topic", "--url", permalink)
	require.NoError(t, err)

	branchPath := filepath.Join(dir, testPdfID+"-"+testDocID+".json")
	require.Contains(t, out, branchPath)

	data, err := os.ReadFile(branchPath)
	require.NoError(t, err)
	require.Contains(t, string(data), `"rawHTML"`)
	require.Contains(t, string(data), "LEGAL AID AMENDMENT BILL 2025")
}

func TestTopicCommandNoDocID(t *testing.T) {
	installMockApp(t, nil)

	dayLink := "https://www.parliament.nsw.gov.au/Hansard/Pages/HansardResult.aspx#/DateDisplay/" + testPdfID
	_, err := executeCommand(t, "topic", "--url", dayLink)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no docid")
}

func TestTopicCommandUnknownDocID(t *testing.T) {
	installMockApp(t, map[string]*transport.Response{
		tocURL: {StatusCode: http.StatusOK, Body: tocBodyFor(testPdfID, testDocID)},
	})

	_, err := executeCommand(t, "topic", "--url", permalink, "--docid", "HANSARD-1323879322-999999")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no topic with docid")
}
