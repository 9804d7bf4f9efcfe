// Package app_test contains unit tests for the app package.
package app_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/app"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/config"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/hansard"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		API:       config.APIConfig{BaseURL: hansard.DefaultBaseURL},
		Transport: config.TransportConfig{Provider: "http", Timeout: 30 * time.Second, PoolSize: 4},
		Scrape:    config.ScrapeConfig{Workers: 2, Engine: "xpath", OutputDir: t.TempDir()},
		Fragment:  config.FragmentConfig{Retries: 1, RetryStatuses: []int{502}, InitialDelay: time.Millisecond, Backoff: 2.0},
		Metrics:   config.MetricsConfig{Listen: ":9090"},
	}
}

func TestNewApp(t *testing.T) {
	t.Parallel()

	a, err := app.New(testConfig(t), zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, a)

	assert.NotNil(t, a.GetLogger())
	assert.NotNil(t, a.GetTOC())
	assert.NotNil(t, a.GetFragments())
	assert.NotNil(t, a.GetWriter())
	assert.NotNil(t, a.GetDumper())
	assert.Equal(t, hansard.DefaultBaseURL, a.GetConfig().API.BaseURL)

	a.Close()
}

func TestNewAppCollyProvider(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Transport.Provider = "colly"

	a, err := app.New(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, a)
	a.Close()
}

func TestNewAppUnknownProvider(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Transport.Provider = "ftp"

	_, err := app.New(cfg, zap.NewNop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown transport provider")
}

func TestAppMetricsServer(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Metrics.Enabled = true
	cfg.Metrics.Listen = "127.0.0.1:0"

	a, err := app.New(cfg, zap.NewNop())
	require.NoError(t, err)

	// Shutdown must be clean whether or not the listener got as far as
	// accepting connections.
	a.Close()
}
